package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/asnhub/asndash/internal/identity"
)

const usage = `usage: asnctl <command>

commands:
  list-users    print all registered accounts
  add-user      create an account interactively
  del-user      delete an account (its usernames stop authenticating)
  cleanup       remove credentials that belong to no known account
  reset         wipe the identity store back to factory defaults
`

// Run dispatches one asnctl command against the identity service.
func Run(ctx context.Context, svc *identity.Service, args []string, in io.Reader, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("command required")
	}

	switch args[0] {
	case "list-users":
		return listUsers(ctx, svc, out)
	case "add-user":
		return addUser(ctx, svc, in, out)
	case "del-user":
		return delUser(ctx, svc, in, out)
	case "cleanup":
		return cleanup(ctx, svc, out)
	case "reset":
		return reset(ctx, svc, in, out)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func listUsers(ctx context.Context, svc *identity.Service, out io.Writer) error {
	users, err := svc.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tROLE\tEMAIL\tNAME\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.Username, u.Role, u.Email, u.Name, u.CreatedAt.Format("2006-01-02"))
	}
	return tw.Flush()
}

func addUser(ctx context.Context, svc *identity.Service, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	username, err := GetSimpleText(reader, "Username:", out)
	if err != nil {
		return err
	}
	password, err := GetPassword(out, "Password: ")
	if err != nil {
		return err
	}
	email, err := GetSimpleText(reader, "Email:", out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(reader, "Full name:", out)
	if err != nil {
		return err
	}
	roleText, err := GetSimpleText(reader, "Role (admin/user/superadmin, default user):", out)
	if err != nil {
		return err
	}

	role := identity.Role(roleText)
	if role == "" {
		role = identity.RoleUser
	}
	switch role {
	case identity.RoleAdmin, identity.RoleUser, identity.RoleSuperadmin:
	default:
		return fmt.Errorf("unknown role: %s", roleText)
	}

	res, err := svc.CreateUser(ctx, username, password, email, name, role)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Fprintf(out, "user %s created\n", username)
	return nil
}

func delUser(ctx context.Context, svc *identity.Service, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	username, err := GetSimpleText(reader, "Username to delete:", out)
	if err != nil {
		return err
	}

	res, err := svc.DeleteUser(ctx, username)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Fprintf(out, "user %s deleted\n", username)
	return nil
}

func cleanup(ctx context.Context, svc *identity.Service, out io.Writer) error {
	res, err := svc.CleanupInvalidCredentials(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "removed %d invalid credential(s), %d remaining\n", res.Cleaned, res.Remaining)
	return nil
}

func reset(ctx context.Context, svc *identity.Service, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	confirm, err := GetSimpleText(reader, "This wipes ALL identity data. Type 'yes' to continue:", out)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		fmt.Fprintln(out, "aborted")
		return nil
	}

	res, err := svc.ResetAllData(ctx)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Fprintln(out, "identity store reset to defaults")
	return nil
}

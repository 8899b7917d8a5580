package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrlokans/stacks/internal/auth"
	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/database"
	"github.com/mrlokans/stacks/internal/database/users"
)

var errPasswordMismatch = errors.New("passwords do not match")

func NewAddUserCommand(cfg *config.Config) *cobra.Command {
	var studentID string
	var reset bool

	cmd := &cobra.Command{
		Use:   "add-user --student-id <id>",
		Short: "Create a catalog account, or reset its password",
		Long:  "Reads the password from the terminal without echo. When stdin is not a terminal, the first line of stdin is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			db, err := database.NewCatalogDatabase(cfg.Catalog.DatabasePath)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), msgConnectionFailed)
				return fmt.Errorf("%w: %v", errReported, err)
			}
			defer db.Close()

			service := auth.NewService(users.NewRepository(db.DB), cfg.Auth)

			if reset {
				err := service.ResetPassword(studentID, password)
				if errors.Is(err, users.ErrUserNotFound) {
					return fmt.Errorf("user %q does not exist", studentID)
				}
				if err != nil {
					return err
				}
				say(cmd, `Password for "%s" updated.`, studentID)
				return nil
			}

			user, err := service.RegisterUser(studentID, password)
			if errors.Is(err, users.ErrUserExists) {
				return fmt.Errorf("user %q already exists, use --reset to change the password", studentID)
			}
			if err != nil {
				return err
			}
			say(cmd, `User "%s" created with id %d.`, user.StudentID, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&studentID, "student-id", "", "login of the new account")
	cmd.Flags().BoolVar(&reset, "reset", false, "change the password of an existing account")
	cmd.Flags().StringVar(&cfg.Catalog.DatabasePath, "catalog-db", cfg.Catalog.DatabasePath, "path to the catalog database")
	cmd.MarkFlagRequired("student-id")

	return cmd
}

// readPassword prompts twice on a terminal, otherwise reads one line.
func readPassword(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		first, err := prompt(cmd, f, "Password: ")
		if err != nil {
			return "", err
		}
		second, err := prompt(cmd, f, "Repeat password: ")
		if err != nil {
			return "", err
		}
		if first != second {
			return "", errPasswordMismatch
		}
		return first, nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func prompt(cmd *cobra.Command, f *os.File, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

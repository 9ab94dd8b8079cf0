package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Manage journals",
	}
	cmd.AddCommand(newJournalAddCmd())
	cmd.AddCommand(newJournalListCmd())
	cmd.AddCommand(newJournalRemoveCmd())
	cmd.AddCommand(newJournalUseCmd())
	cmd.AddCommand(newJournalRenameCmd())
	cmd.AddCommand(newJournalSetDefaultCmd())
	return cmd
}

func newJournalAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a journal (with its root group)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.stash.Journals.New(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "journal %d created\n", id)
			return nil
		},
	}
}

func newJournalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			active := s.stash.Journals.ActiveID()
			for _, j := range s.stash.Journals.All().Values() {
				marker := " "
				if active != nil && *active == j.JournalID {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%s\n", marker, j.JournalID, j.Name)
			}
			return nil
		},
	}
}

func newJournalRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a journal and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.stash.Journals.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if err := s.persistState(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "journal %d deleted\n", id)
			return nil
		},
	}
}

func newJournalUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id|none>",
		Short: "Activate a journal (or deactivate with \"none\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			var target *int64
			if args[0] != "none" {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				target = &id
			}
			if err := s.stash.Journals.SetActiveID(cmd.Context(), target); err != nil {
				return err
			}
			if err := s.persistState(); err != nil {
				return err
			}
			if target == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no journal active")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "journal %d active\n", *target)
			}
			return nil
		},
	}
}

func newJournalRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a journal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			return s.stash.Journals.SetName(cmd.Context(), id, args[1])
		},
	}
}

func newJournalSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <group-id|none>",
		Short: "Set the active journal's default group",
		Long: "Set the group new words are added to when no group is named.\n" +
			"The journal's root group cannot be the default.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			j, err := s.activeJournal()
			if err != nil {
				return err
			}
			var target *int64
			if args[0] != "none" {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				target = &id
			}
			return s.stash.Journals.SetDefaultGroupID(cmd.Context(), j.JournalID, target)
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage the active journal's groups",
	}
	cmd.AddCommand(newGroupAddCmd())
	cmd.AddCommand(newGroupListCmd())
	cmd.AddCommand(newGroupRemoveCmd())
	cmd.AddCommand(newGroupUseCmd())
	cmd.AddCommand(newGroupRenameCmd())
	return cmd
}

func newGroupAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a group in the active journal",
		Args:  cobra.ExactArgs(1),
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
			id, err := s.stash.Groups.New(cmd.Context(), j.JournalID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "group %d created\n", id)
			return nil
		},
	}
}

func newGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active journal's groups",
		Args:  cobra.NoArgs,
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
			active := s.stash.Groups.ActiveID()
			for _, g := range s.stash.Groups.All().Values() {
				marker := " "
				if active != nil && *active == g.GroupID {
					marker = "*"
				}
				tag := ""
				switch {
				case g.GroupID == j.RootGroupID:
					tag = " (root)"
				case j.DefaultGroupID != nil && *j.DefaultGroupID == g.GroupID:
					tag = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%s%s\n", marker, g.GroupID, g.Name, tag)
			}
			return nil
		},
	}
}

func newGroupRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a group and its word links",
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

			if err := s.stash.Groups.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if err := s.persistState(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "group %d deleted\n", id)
			return nil
		},
	}
}

func newGroupUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id|none>",
		Short: "Activate a group (or deactivate with \"none\")",
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
			if err := s.stash.Groups.SetActiveID(cmd.Context(), target); err != nil {
				return err
			}
			if err := s.persistState(); err != nil {
				return err
			}
			if target == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no group active")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "group %d active\n", *target)
			}
			return nil
		},
	}
}

func newGroupRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a group",
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

			return s.stash.Groups.SetName(cmd.Context(), id, args[1])
		},
	}
}

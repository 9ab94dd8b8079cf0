package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Manage the active journal's words",
	}
	cmd.AddCommand(newWordAddCmd())
	cmd.AddCommand(newWordListCmd())
	cmd.AddCommand(newWordRemoveCmd())
	cmd.AddCommand(newWordLinkCmd())
	cmd.AddCommand(newWordUnlinkCmd())
	return cmd
}

func newWordAddCmd() *cobra.Command {
	var groupIDs []int64
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a word to the active journal",
		Long: "Add a word to the active journal. With --group the word is linked\n" +
			"to the given groups; otherwise the journal's default group is used\n" +
			"when one is set.",
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
			targets := groupIDs
			if len(targets) == 0 && j.DefaultGroupID != nil {
				targets = []int64{*j.DefaultGroupID}
			}
			id, err := s.stash.Words.New(cmd.Context(), j.JournalID, args[0], targets...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "word %d created\n", id)
			return nil
		},
	}
	cmd.Flags().Int64SliceVarP(&groupIDs, "group", "g", nil, "group ids to link the word to")
	return cmd
}

func newWordListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List words (active group if set, else the active journal)",
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
			// The word store tracks the active group when one is set;
			// otherwise fall back to the whole journal.
			if s.stash.Groups.ActiveID() == nil {
				if err := s.stash.Words.FetchByJournal(cmd.Context(), j.JournalID); err != nil {
					return err
				}
			}
			for _, w := range s.stash.Words.All().Values() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", w.WordID, w.Text)
			}
			return nil
		},
	}
}

func newWordRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a word and its group links",
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

			j, err := s.activeJournal()
			if err != nil {
				return err
			}
			if s.stash.Groups.ActiveID() == nil {
				if err := s.stash.Words.FetchByJournal(cmd.Context(), j.JournalID); err != nil {
					return err
				}
			}
			if err := s.stash.Words.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "word %d deleted\n", id)
			return nil
		},
	}
}

func newWordLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <word-id> <group-id>",
		Short: "Link a word to a group",
		Args:  cobra.ExactArgs(2),
		RunE:  runWordLink(false),
	}
}

func newWordUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <word-id> <group-id>",
		Short: "Remove a word from a group",
		Args:  cobra.ExactArgs(2),
		RunE:  runWordLink(true),
	}
}

func runWordLink(unlink bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		wordID, err := parseID(args[0])
		if err != nil {
			return err
		}
		groupID, err := parseID(args[1])
		if err != nil {
			return err
		}
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		j, err := s.activeJournal()
		if err != nil {
			return err
		}
		if s.stash.Groups.ActiveID() == nil {
			if err := s.stash.Words.FetchByJournal(cmd.Context(), j.JournalID); err != nil {
				return err
			}
		}
		if unlink {
			n, err := s.stash.Words.Unlink(cmd.Context(), wordID, groupID)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "not linked")
			}
			return nil
		}
		return s.stash.Words.Link(cmd.Context(), wordID, groupID)
	}
}

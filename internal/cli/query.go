package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	grpcpresentation "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/grpc"
)

const timeLayout = time.RFC3339

func (a *App) decisionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decisions",
		Short: "Inspect recorded decisions",
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp *grpcpresentation.GetDecisionResponse
			err := a.call(cmd.Context(), func(ctx context.Context, client grpcpresentation.SentinelServiceClient) error {
				var err error
				resp, err = client.GetDecision(ctx, &grpcpresentation.GetDecisionRequest{ID: args[0]})
				return err
			})
			if err != nil {
				return err
			}
			return a.render(resp.Decision, func(w io.Writer) error {
				return writeDecision(w, resp.Decision)
			})
		},
	}

	var list grpcpresentation.ListDecisionsRequest
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the most recent decisions for a phone number",
		Example: "  sentinelctl decisions list --phone +99999991000 --limit 5",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp *grpcpresentation.ListDecisionsResponse
			err := a.call(cmd.Context(), func(ctx context.Context, client grpcpresentation.SentinelServiceClient) error {
				var err error
				resp, err = client.ListDecisions(ctx, &list)
				return err
			})
			if err != nil {
				return err
			}
			return a.render(resp, func(w io.Writer) error {
				return writeDecisionTable(w, resp.Decisions)
			})
		},
	}
	listCmd.Flags().StringVar(&list.PhoneNumber, "phone", "", "subscriber phone number in E.164 form")
	listCmd.Flags().Int32Var(&list.Limit, "limit", 20, "maximum number of decisions")
	_ = listCmd.MarkFlagRequired("phone")

	cmd.AddCommand(get, listCmd)
	return cmd
}

func (a *App) controlsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "controls",
		Short: "Inspect onboarding controls",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <subject-id>",
		Short: "Show the onboarding control state of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp *grpcpresentation.GetControlStateResponse
			err := a.call(cmd.Context(), func(ctx context.Context, client grpcpresentation.SentinelServiceClient) error {
				var err error
				resp, err = client.GetControlState(ctx, &grpcpresentation.GetControlStateRequest{SubjectID: args[0]})
				return err
			})
			if err != nil {
				return err
			}
			s := resp.State
			return a.render(s, func(w io.Writer) error {
				return writeFields(w,
					field{"subject", s.SubjectID},
					field{"phone", s.PhoneNumber},
					field{"paused", s.Paused},
					field{"otp allowed", s.OTPAllowed},
					field{"cleared to kyc", s.ClearedToKYC},
					field{"updated", s.UpdatedAt.UTC().Format(timeLayout)},
				)
			})
		},
	})
	return cmd
}

func writeDecision(w io.Writer, d dto.DecisionResponse) error {
	err := writeFields(w,
		field{"id", d.ID},
		field{"kind", d.Kind},
		field{"subject", d.SubjectID},
		field{"phone", d.PhoneNumber},
		field{"tier", d.Tier},
		field{"score", d.Score},
		field{"outcome", d.Outcome},
		field{"created", d.CreatedAt.UTC().Format(timeLayout)},
	)
	if err != nil {
		return err
	}
	if err := writeList(w, "factors", d.Factors); err != nil {
		return err
	}
	return writeList(w, "actions", d.Actions)
}

func writeDecisionTable(w io.Writer, decisions []dto.DecisionResponse) error {
	if len(decisions) == 0 {
		_, err := fmt.Fprintln(w, "no decisions")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTIER\tSCORE\tOUTCOME\tCREATED")
	for _, d := range decisions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			d.ID, d.Kind, d.Tier, d.Score, d.Outcome, d.CreatedAt.UTC().Format(timeLayout))
	}
	return tw.Flush()
}

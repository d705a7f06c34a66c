package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/application/dto"
	grpcpresentation "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/presentation/grpc"
)

func (a *App) onboardCmd() *cobra.Command {
	var req grpcpresentation.RunOnboardingRequest

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Run the onboarding pipeline for a subscriber",
		Example: `  sentinelctl onboard --phone +99999991000 --name "Asha Rao"
  sentinelctl onboard --phone +99999991001 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp *grpcpresentation.RunOnboardingResponse
			err := a.call(cmd.Context(), func(ctx context.Context, client grpcpresentation.SentinelServiceClient) error {
				var err error
				resp, err = client.RunOnboarding(ctx, &req)
				return err
			})
			if err != nil {
				return err
			}
			return a.render(resp.Result, func(w io.Writer) error {
				return writeOnboarding(w, resp.Result)
			})
		},
	}

	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "subscriber phone number in E.164 form")
	cmd.Flags().StringVar(&req.UserName, "name", "", "subscriber name")
	cmd.Flags().StringVar(&req.Language, "language", "", "message language (en, hi)")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func (a *App) monitorCmd() *cobra.Command {
	var req grpcpresentation.MonitorTransactionRequest

	cmd := &cobra.Command{
		Use:     "monitor",
		Short:   "Score a transaction before it is executed",
		Example: "  sentinelctl monitor --phone +99999991000 --amount 25000 --type transfer",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := decimal.NewFromString(req.Amount); err != nil {
				return fmt.Errorf("invalid amount %q: %w", req.Amount, err)
			}

			var resp *grpcpresentation.MonitorTransactionResponse
			err := a.call(cmd.Context(), func(ctx context.Context, client grpcpresentation.SentinelServiceClient) error {
				var err error
				resp, err = client.MonitorTransaction(ctx, &req)
				return err
			})
			if err != nil {
				return err
			}
			return a.render(resp.Result, func(w io.Writer) error {
				return writeTransaction(w, resp.Result)
			})
		},
	}

	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "subscriber phone number in E.164 form")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "transaction amount")
	cmd.Flags().StringVar(&req.TransactionType, "type", "transfer", "transaction type")
	cmd.Flags().StringVar(&req.MerchantName, "merchant", "", "merchant name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (a *App) simSwapCmd() *cobra.Command {
	var req grpcpresentation.AssessSimSwapRequest

	cmd := &cobra.Command{
		Use:     "simswap",
		Short:   "Assess SIM swap risk for a phone number",
		Example: "  sentinelctl simswap --phone +99999991000 --max-age 72",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var resp *grpcpresentation.AssessSimSwapResponse
			err := a.call(cmd.Context(), func(ctx context.Context, client grpcpresentation.SentinelServiceClient) error {
				var err error
				resp, err = client.AssessSimSwap(ctx, &req)
				return err
			})
			if err != nil {
				return err
			}
			return a.render(resp.Result, func(w io.Writer) error {
				return writeSimSwap(w, resp.Result)
			})
		},
	}

	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "subscriber phone number in E.164 form")
	cmd.Flags().StringVar(&req.UserID, "user", "", "subject id recorded with the decision")
	cmd.Flags().Int32Var(&req.MaxAgeHours, "max-age", 0, "SIM swap look-back window in hours (server default when 0)")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func writeOnboarding(w io.Writer, r dto.OnboardingResponse) error {
	fields := []field{
		{"session", r.SessionID},
		{"status", r.Status},
		{"next step", r.NextStep},
		{"risk score", r.RiskScore},
		{"number verified", r.NumberVerified},
		{"sim swap checked", r.SimSwapChecked},
	}
	if r.SimSwap != nil {
		fields = append(fields, field{"sim swap", r.SimSwap.Status})
	}
	if r.Ownership != nil {
		fields = append(fields, field{"ownership", r.Ownership.Status})
	}
	if r.Assessment != nil {
		fields = append(fields, field{"tier", r.Assessment.Tier})
	}
	if r.DecisionID != nil {
		fields = append(fields, field{"decision", *r.DecisionID})
	}
	if err := writeFields(w, fields...); err != nil {
		return err
	}
	if err := writeList(w, "messages", r.Messages); err != nil {
		return err
	}
	return writeActions(w, r.Actions)
}

func writeTransaction(w io.Writer, r dto.TransactionResponse) error {
	fields := []field{
		{"transaction", r.TransactionID},
		{"risk level", r.RiskLevel},
		{"risk score", r.RiskScore},
		{"action", r.Action},
		{"approved", r.Approved},
		{"blocked", r.Blocked},
		{"needs confirmation", r.RequiresUserConfirmation},
		{"message", r.Message},
	}
	if r.DecisionID != nil {
		fields = append(fields, field{"decision", *r.DecisionID})
	}
	if err := writeFields(w, fields...); err != nil {
		return err
	}
	return writeList(w, "factors", r.Factors)
}

func writeSimSwap(w io.Writer, r dto.SimSwapResponse) error {
	fields := []field{
		{"status", r.Signal.Status},
		{"swapped", r.Signal.Swapped},
		{"max age hours", r.Signal.MaxAgeHours},
		{"recommendation", r.Signal.Recommendation},
	}
	if r.Signal.SwapDate != nil {
		fields = append(fields, field{"swap date", r.Signal.SwapDate.UTC().Format(timeLayout)})
	}
	if r.Assessment != nil {
		fields = append(fields, field{"tier", r.Assessment.Tier}, field{"score", r.Assessment.Score})
	}
	if r.DecisionID != nil {
		fields = append(fields, field{"decision", *r.DecisionID})
	}
	if err := writeFields(w, fields...); err != nil {
		return err
	}
	return writeActions(w, r.Actions)
}

func writeActions(w io.Writer, actions []dto.ActionOutcomeResponse) error {
	items := make([]string, 0, len(actions))
	for _, act := range actions {
		item := act.Action + " ok"
		if !act.OK {
			item = act.Action + " failed: " + act.Error
		}
		items = append(items, item)
	}
	return writeList(w, "actions", items)
}

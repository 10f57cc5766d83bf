package commands

import (
	"context"
	"fmt"

	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/pkg/conoha"
	"github.com/spf13/cobra"
)

// fetchFunc calls one account endpoint.
type fetchFunc func(ctx context.Context, account conoha.AccountClient, args []string) (conoha.Document, error)

// NewAccountCommand creates the account command group.
func NewAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"acct"},
		Short:   "Read account information",
		Long:    "Read orders, products, payments, invoices, notifications and object storage usage of the tenant",
	}

	cmd.AddCommand(newAccountVersionCommand())
	cmd.AddCommand(newAccountOrderItemsCommand())
	cmd.AddCommand(newAccountOrderItemCommand())
	cmd.AddCommand(newAccountProductsCommand())
	cmd.AddCommand(newAccountPaymentHistoryCommand())
	cmd.AddCommand(newAccountPaymentSummaryCommand())
	cmd.AddCommand(newAccountInvoicesCommand())
	cmd.AddCommand(newAccountInvoiceCommand())
	cmd.AddCommand(newAccountNotificationsCommand())
	cmd.AddCommand(newAccountNotificationCommand())
	cmd.AddCommand(newAccountMarkNotificationCommand())
	cmd.AddCommand(newAccountObjectStorageRequestsCommand())
	cmd.AddCommand(newAccountObjectStorageSizeCommand())

	return cmd
}

// newDocumentCommand builds a command that fetches one document and renders it.
func newDocumentCommand(use, short, long string, args cobra.PositionalArgs, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClientFunc(cmd)
			if err != nil {
				return err
			}

			doc, err := fetch(commandContext(cmd), client.Account(), args)
			if err != nil {
				return err
			}

			return renderValue(cmd.OutOrStdout(), cmd.Name(), doc)
		},
	}
}

func newAccountVersionCommand() *cobra.Command {
	return newDocumentCommand(
		"version",
		"Show account API version",
		"Display version details of the account API",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.GetVersionDetail(ctx)
		},
	)
}

func newAccountOrderItemsCommand() *cobra.Command {
	return newDocumentCommand(
		"order-items",
		"List order items",
		"List the order items of the tenant",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.ListOrderItems(ctx)
		},
	)
}

func newAccountOrderItemCommand() *cobra.Command {
	return newDocumentCommand(
		"order-item ITEM_ID",
		"Get order item details",
		"Display detailed information about a specific order item",
		cobra.ExactArgs(1),
		func(ctx context.Context, account conoha.AccountClient, args []string) (conoha.Document, error) {
			return account.GetOrderItem(ctx, args[0])
		},
	)
}

func newAccountProductsCommand() *cobra.Command {
	var serviceName string

	cmd := newDocumentCommand(
		"products",
		"List product items",
		"List product items and their prices, optionally for one service",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.ListProductItems(ctx, serviceName)
		},
	)

	cmd.Flags().StringVar(&serviceName, "service", "", "service name, e.g. VPS")

	return cmd
}

func newAccountPaymentHistoryCommand() *cobra.Command {
	return newDocumentCommand(
		"payment-history",
		"Show payment history",
		"Display the deposit history of the tenant",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.GetPaymentHistory(ctx)
		},
	)
}

func newAccountPaymentSummaryCommand() *cobra.Command {
	return newDocumentCommand(
		"payment-summary",
		"Show payment summary",
		"Display the total deposit of the tenant",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.GetPaymentSummary(ctx)
		},
	)
}

func newAccountInvoicesCommand() *cobra.Command {
	var opts conoha.ListOptions

	cmd := newDocumentCommand(
		"invoices",
		"List billing invoices",
		"List billing invoices, newest first",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.ListBillingInvoices(ctx, &opts)
		},
	)

	addListFlags(cmd, &opts)

	return cmd
}

func newAccountInvoiceCommand() *cobra.Command {
	return newDocumentCommand(
		"invoice INVOICE_ID",
		"Get billing invoice details",
		"Display a billing invoice and its items",
		cobra.ExactArgs(1),
		func(ctx context.Context, account conoha.AccountClient, args []string) (conoha.Document, error) {
			return account.GetBillingInvoice(ctx, args[0])
		},
	)
}

func newAccountNotificationsCommand() *cobra.Command {
	var opts conoha.ListOptions

	cmd := newDocumentCommand(
		"notifications",
		"List notifications",
		"List notifications sent to the tenant, newest first",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.ListNotifications(ctx, &opts)
		},
	)

	addListFlags(cmd, &opts)

	return cmd
}

func newAccountNotificationCommand() *cobra.Command {
	return newDocumentCommand(
		"notification CODE",
		"Get notification details",
		"Display a notification and its contents",
		cobra.ExactArgs(1),
		func(ctx context.Context, account conoha.AccountClient, args []string) (conoha.Document, error) {
			return account.GetNotification(ctx, args[0])
		},
	)
}

func newAccountMarkNotificationCommand() *cobra.Command {
	var status string

	cmd := newDocumentCommand(
		"mark-notification CODE",
		"Set the read status of a notification",
		"Set the read status of a notification to Unread, ReadTitleOnly or Read",
		cobra.ExactArgs(1),
		func(ctx context.Context, account conoha.AccountClient, args []string) (conoha.Document, error) {
			return account.UpdateNotificationStatus(ctx, args[0], status)
		},
	)

	cmd.Flags().StringVar(&status, "status", conoha.ReadStatusRead, "read status (Unread, ReadTitleOnly, Read)")
	cmd.PreRunE = func(_ *cobra.Command, _ []string) error {
		return validateReadStatus(status)
	}

	return cmd
}

func newAccountObjectStorageRequestsCommand() *cobra.Command {
	var opts conoha.RRDOptions

	cmd := newDocumentCommand(
		"object-storage-requests",
		"Show object storage request counts",
		"Display object storage request counts as RRD data",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.GetObjectStorageRequests(ctx, &opts)
		},
	)

	addRRDFlags(cmd, &opts)

	return cmd
}

func newAccountObjectStorageSizeCommand() *cobra.Command {
	var opts conoha.RRDOptions

	cmd := newDocumentCommand(
		"object-storage-size",
		"Show object storage usage",
		"Display object storage usage in bytes as RRD data",
		cobra.NoArgs,
		func(ctx context.Context, account conoha.AccountClient, _ []string) (conoha.Document, error) {
			return account.GetObjectStorageSize(ctx, &opts)
		},
	)

	addRRDFlags(cmd, &opts)

	return cmd
}

func addListFlags(cmd *cobra.Command, opts *conoha.ListOptions) {
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "number of newest entries to skip")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of entries")
}

func addRRDFlags(cmd *cobra.Command, opts *conoha.RRDOptions) {
	cmd.Flags().Int64Var(&opts.StartDateRaw, "start", 0, "range start as UNIX time")
	cmd.Flags().Int64Var(&opts.EndDateRaw, "end", 0, "range end as UNIX time")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "aggregation mode (average, max, min)")
	cmd.PreRunE = func(_ *cobra.Command, _ []string) error {
		return validateRRDMode(opts.Mode)
	}
}

func validateReadStatus(status string) error {
	switch status {
	case conoha.ReadStatusUnread, conoha.ReadStatusReadTitleOnly, conoha.ReadStatusRead:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidReadStatus, status)
	}
}

func validateRRDMode(mode string) error {
	switch mode {
	case "", conoha.RRDModeAverage, conoha.RRDModeMax, conoha.RRDModeMin:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidRRDMode, mode)
	}
}

package client

import (
	"context"
	"fmt"

	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/internal/http"
	"github.com/keika299/conoha/pkg/conoha"
)

// AccountClient implements conoha.AccountClient.
type AccountClient struct {
	httpClient *http.Client
	baseURL    string
	tenantID   string
	token      string
}

// NewAccountClient creates a new account service client.
func NewAccountClient(httpClient *http.Client, baseURL, tenantID, token string) *AccountClient {
	return &AccountClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		tenantID:   tenantID,
		token:      token,
	}
}

// notificationStatusRequest is the body of a notification status update.
type notificationStatusRequest struct {
	Notification notificationStatus `json:"notification"`
}

type notificationStatus struct {
	ReadStatus string `json:"read_status"`
}

// GetVersionDetail implements conoha.AccountClient.GetVersionDetail.
func (c *AccountClient) GetVersionDetail(ctx context.Context) (conoha.Document, error) {
	doc, err := c.get(ctx, constants.AccountAPIVersion, nil)
	if err != nil {
		return nil, fmt.Errorf("getting account version detail: %w", err)
	}

	return doc, nil
}

// ListOrderItems implements conoha.AccountClient.ListOrderItems.
func (c *AccountClient) ListOrderItems(ctx context.Context) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/order-items"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}

	return doc, nil
}

// GetOrderItem implements conoha.AccountClient.GetOrderItem.
func (c *AccountClient) GetOrderItem(ctx context.Context, itemID string) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/order-items/"+itemID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting order item: %w", err)
	}

	return doc, nil
}

// ListProductItems implements conoha.AccountClient.ListProductItems. An empty serviceName
// lists products of every service.
func (c *AccountClient) ListProductItems(ctx context.Context, serviceName string) (conoha.Document, error) {
	var query conoha.Query
	if serviceName != "" {
		query = conoha.NewQuery("service_name", serviceName)
	}

	doc, err := c.get(ctx, c.tenantPath("/product-items"), query)
	if err != nil {
		return nil, fmt.Errorf("listing product items: %w", err)
	}

	return doc, nil
}

// GetPaymentHistory implements conoha.AccountClient.GetPaymentHistory.
func (c *AccountClient) GetPaymentHistory(ctx context.Context) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/payment-history"), nil)
	if err != nil {
		return nil, fmt.Errorf("getting payment history: %w", err)
	}

	return doc, nil
}

// GetPaymentSummary implements conoha.AccountClient.GetPaymentSummary.
func (c *AccountClient) GetPaymentSummary(ctx context.Context) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/payment-summary"), nil)
	if err != nil {
		return nil, fmt.Errorf("getting payment summary: %w", err)
	}

	return doc, nil
}

// ListBillingInvoices implements conoha.AccountClient.ListBillingInvoices.
func (c *AccountClient) ListBillingInvoices(ctx context.Context, opts *conoha.ListOptions) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/billing-invoices"), opts.Query())
	if err != nil {
		return nil, fmt.Errorf("listing billing invoices: %w", err)
	}

	return doc, nil
}

// GetBillingInvoice implements conoha.AccountClient.GetBillingInvoice.
func (c *AccountClient) GetBillingInvoice(ctx context.Context, invoiceID string) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/billing-invoices/"+invoiceID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting billing invoice: %w", err)
	}

	return doc, nil
}

// ListNotifications implements conoha.AccountClient.ListNotifications.
func (c *AccountClient) ListNotifications(ctx context.Context, opts *conoha.ListOptions) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/notifications"), opts.Query())
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	return doc, nil
}

// GetNotification implements conoha.AccountClient.GetNotification.
func (c *AccountClient) GetNotification(ctx context.Context, notificationCode string) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/notifications/"+notificationCode), nil)
	if err != nil {
		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return doc, nil
}

// UpdateNotificationStatus implements conoha.AccountClient.UpdateNotificationStatus.
func (c *AccountClient) UpdateNotificationStatus(ctx context.Context, notificationCode, status string) (conoha.Document, error) {
	if !isValidReadStatus(status) {
		return nil, fmt.Errorf("%w: %q", conoha.ErrInvalidReadStatus, status)
	}

	body := notificationStatusRequest{
		Notification: notificationStatus{ReadStatus: status},
	}

	req := c.newRequest(c.tenantPath("/notifications/" + notificationCode)).
		WithMethod("PUT").
		WithJSON(body)

	doc, err := c.execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("updating notification status: %w", err)
	}

	return doc, nil
}

// GetObjectStorageRequests implements conoha.AccountClient.GetObjectStorageRequests.
func (c *AccountClient) GetObjectStorageRequests(ctx context.Context, opts *conoha.RRDOptions) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/object-storage/rrd/request"), opts.Query())
	if err != nil {
		return nil, fmt.Errorf("getting object storage requests: %w", err)
	}

	return doc, nil
}

// GetObjectStorageSize implements conoha.AccountClient.GetObjectStorageSize.
func (c *AccountClient) GetObjectStorageSize(ctx context.Context, opts *conoha.RRDOptions) (conoha.Document, error) {
	doc, err := c.get(ctx, c.tenantPath("/object-storage/rrd/size"), opts.Query())
	if err != nil {
		return nil, fmt.Errorf("getting object storage size: %w", err)
	}

	return doc, nil
}

func (c *AccountClient) tenantPath(suffix string) string {
	return constants.AccountAPIVersion + "/" + c.tenantID + suffix
}

func (c *AccountClient) newRequest(path string) http.Request {
	return http.NewRequest().
		WithBaseURI(c.baseURL).
		WithURI(path).
		WithAccept(constants.MediaTypeJSON).
		WithToken(c.token)
}

func (c *AccountClient) get(ctx context.Context, path string, query conoha.Query) (conoha.Document, error) {
	return c.execute(ctx, c.newRequest(path).WithQuery(query))
}

func (c *AccountClient) execute(ctx context.Context, req http.Request) (conoha.Document, error) {
	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var doc conoha.Document

	err = resp.DecodeJSON(&doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func isValidReadStatus(status string) bool {
	switch status {
	case conoha.ReadStatusUnread, conoha.ReadStatusReadTitleOnly, conoha.ReadStatusRead:
		return true
	default:
		return false
	}
}

// Ensure AccountClient implements conoha.AccountClient.
var _ conoha.AccountClient = (*AccountClient)(nil)

package client

import (
	"context"
	"fmt"

	"github.com/aulaschool/aula/pkg/domain"
)

// PaymentFilter narrows ListPayments. Zero fields are not sent.
type PaymentFilter struct {
	SchoolID int64
	Year     int
	Month    int
	Search   string
	Status   domain.PaymentStatus
	Page     int
	PageSize int
}

// ListPayments returns one page of payments. This is the only paginated list
// endpoint; the server applies its own defaults when Page/PageSize are zero.
func (c *Client) ListPayments(ctx context.Context, f PaymentFilter) (*domain.Page[domain.Payment], error) {
	q := Params{
		"schoolId": f.SchoolID,
		"year":     f.Year,
		"month":    f.Month,
		"search":   f.Search,
		"status":   f.Status,
		"page":     f.Page,
		"pageSize": f.PageSize,
	}
	var page domain.Page[domain.Payment]
	if err := c.get(ctx, "api/payments", q, &page); err != nil {
		return nil, fmt.Errorf("client.ListPayments: %w", err)
	}
	return &page, nil
}

// GetPayment fetches a payment by ID.
func (c *Client) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := c.get(ctx, fmt.Sprintf("api/payments/%d", id), nil, &p); err != nil {
		return nil, fmt.Errorf("client.GetPayment: %w", err)
	}
	return &p, nil
}

// CreatePayment registers a charge.
func (c *Client) CreatePayment(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	var created domain.Payment
	if err := c.post(ctx, "api/payments", p, &created); err != nil {
		return nil, fmt.Errorf("client.CreatePayment: %w", err)
	}
	return &created, nil
}

// UpdatePaymentStatus moves a payment to a new status.
func (c *Client) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	var updated domain.Payment
	body := map[string]domain.PaymentStatus{"status": status}
	if err := c.put(ctx, fmt.Sprintf("api/payments/%d/status", id), body, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdatePaymentStatus: %w", err)
	}
	return &updated, nil
}

// PaymentsByStudent fetches one page of payments and groups it by student.
func (c *Client) PaymentsByStudent(ctx context.Context, f PaymentFilter) (map[int64][]domain.Payment, error) {
	page, err := c.ListPayments(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("client.PaymentsByStudent: %w", err)
	}
	return domain.GroupPaymentsByStudent(page.Items), nil
}

// --- Invoices ---

// InvoiceFilter narrows ListInvoices. Zero fields are not sent.
type InvoiceFilter struct {
	SchoolID int64
	Year     int
	Month    int
	Search   string
}

// ListInvoices returns every invoice matching the filter (not paginated).
func (c *Client) ListInvoices(ctx context.Context, f InvoiceFilter) ([]domain.Invoice, error) {
	q := Params{
		"schoolId": f.SchoolID,
		"year":     f.Year,
		"month":    f.Month,
		"search":   f.Search,
	}
	var invoices []domain.Invoice
	if err := c.get(ctx, "api/invoices", q, &invoices); err != nil {
		return nil, fmt.Errorf("client.ListInvoices: %w", err)
	}
	return invoices, nil
}

// GetInvoice fetches an invoice by ID.
func (c *Client) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := c.get(ctx, fmt.Sprintf("api/invoices/%d", id), nil, &inv); err != nil {
		return nil, fmt.Errorf("client.GetInvoice: %w", err)
	}
	return &inv, nil
}

// CreateInvoice issues an invoice.
func (c *Client) CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	var created domain.Invoice
	if err := c.post(ctx, "api/invoices", inv, &created); err != nil {
		return nil, fmt.Errorf("client.CreateInvoice: %w", err)
	}
	return &created, nil
}

// VoidInvoice cancels an issued invoice.
func (c *Client) VoidInvoice(ctx context.Context, id int64, reason string) error {
	if err := c.post(ctx, fmt.Sprintf("api/invoices/%d/void", id), map[string]string{"reason": reason}, nil); err != nil {
		return fmt.Errorf("client.VoidInvoice: %w", err)
	}
	return nil
}

// InvoicePDFURL returns the download URL of an invoice's PDF. The endpoint
// answers with plain text; a JSON string is accepted too.
func (c *Client) InvoicePDFURL(ctx context.Context, id int64) (string, error) {
	res, err := c.Do(ctx, Request{Path: fmt.Sprintf("api/invoices/%d/pdf-url", id)})
	if err != nil {
		return "", fmt.Errorf("client.InvoicePDFURL: %w", err)
	}
	switch res.Kind() {
	case ResultText:
		return res.Text(), nil
	case ResultJSON:
		var u string
		if err := res.Decode(&u); err != nil {
			return "", fmt.Errorf("client.InvoicePDFURL: %w", err)
		}
		return u, nil
	}
	return "", nil
}

// --- Payroll ---

// PayrollPeriod selects the month of a payroll.
type PayrollPeriod struct {
	SchoolID int64
	Year     int
	Month    int
}

// PreviewPayroll computes the payroll for a month without submitting it.
func (c *Client) PreviewPayroll(ctx context.Context, p PayrollPeriod) (*domain.PayrollPreview, error) {
	q := Params{"schoolId": p.SchoolID, "year": p.Year, "month": p.Month}
	var preview domain.PayrollPreview
	if err := c.get(ctx, "api/payroll/preview", q, &preview); err != nil {
		return nil, fmt.Errorf("client.PreviewPayroll: %w", err)
	}
	return &preview, nil
}

// ListPayrollRuns returns submitted payrolls of a school, optionally for one year.
func (c *Client) ListPayrollRuns(ctx context.Context, schoolID int64, year int) ([]domain.PayrollRun, error) {
	var runs []domain.PayrollRun
	if err := c.get(ctx, "api/payroll", Params{"schoolId": schoolID, "year": year}, &runs); err != nil {
		return nil, fmt.Errorf("client.ListPayrollRuns: %w", err)
	}
	return runs, nil
}

// ApprovePayroll approves a pending payroll run.
func (c *Client) ApprovePayroll(ctx context.Context, id int64) (*domain.PayrollRun, error) {
	var run domain.PayrollRun
	if err := c.post(ctx, fmt.Sprintf("api/payroll/%d/approve", id), nil, &run); err != nil {
		return nil, fmt.Errorf("client.ApprovePayroll: %w", err)
	}
	return &run, nil
}

// RejectPayroll rejects a pending payroll run with a reason.
func (c *Client) RejectPayroll(ctx context.Context, id int64, reason string) (*domain.PayrollRun, error) {
	var run domain.PayrollRun
	if err := c.post(ctx, fmt.Sprintf("api/payroll/%d/reject", id), map[string]string{"reason": reason}, &run); err != nil {
		return nil, fmt.Errorf("client.RejectPayroll: %w", err)
	}
	return &run, nil
}

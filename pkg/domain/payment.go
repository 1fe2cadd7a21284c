package domain

import "time"

// PaymentStatus values used by the backend.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is a tuition or fee charge against a student.
type Payment struct {
	ID          int64         `json:"id"`
	SchoolID    int64         `json:"schoolId"`
	StudentID   int64         `json:"studentId"`
	StudentName string        `json:"studentName,omitempty"`
	Concept     string        `json:"concept"`
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency,omitempty"`
	Status      PaymentStatus `json:"status"`
	DueDate     time.Time     `json:"dueDate"`
	PaidAt      *time.Time    `json:"paidAt,omitempty"`
	Reference   string        `json:"reference,omitempty"`
}

// Page is the envelope used by the paginated list endpoints.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// TotalPages returns the number of pages, at least 1.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.TotalCount <= p.PageSize {
		return 1
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// GroupPaymentsByStudent groups payments by student ID, keeping input order.
func GroupPaymentsByStudent(payments []Payment) map[int64][]Payment {
	out := make(map[int64][]Payment)
	for _, p := range payments {
		out[p.StudentID] = append(out[p.StudentID], p)
	}
	return out
}

// SumPayments totals amounts of payments with the given status.
func SumPayments(payments []Payment, status PaymentStatus) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == status {
			total += p.Amount
		}
	}
	return total
}

// Invoice is a fiscal document issued for one or more payments.
type Invoice struct {
	ID         int64         `json:"id"`
	SchoolID   int64         `json:"schoolId"`
	Number     string        `json:"number"`
	CustomerID int64         `json:"customerId"`
	Customer   string        `json:"customer,omitempty"`
	Lines      []InvoiceLine `json:"lines,omitempty"`
	Total      float64       `json:"total"`
	Currency   string        `json:"currency,omitempty"`
	IssuedAt   time.Time     `json:"issuedAt"`
	Voided     bool          `json:"voided"`
}

// InvoiceLine is one item of an invoice.
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	PaymentID   int64   `json:"paymentId,omitempty"`
}

// PayrollLine is one employee's row in a payroll preview.
type PayrollLine struct {
	EmployeeID   int64   `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	BaseSalary   float64 `json:"baseSalary"`
	Bonuses      float64 `json:"bonuses"`
	Deductions   float64 `json:"deductions"`
	NetPay       float64 `json:"netPay"`
}

// PayrollPreview is the computed, not yet approved payroll for a month.
type PayrollPreview struct {
	SchoolID int64         `json:"schoolId"`
	Year     int           `json:"year"`
	Month    int           `json:"month"`
	Lines    []PayrollLine `json:"lines"`
	Total    float64       `json:"total"`
}

// PayrollRun statuses.
const (
	PayrollPending  = "pending"
	PayrollApproved = "approved"
	PayrollRejected = "rejected"
)

// PayrollRun is a submitted payroll awaiting or past review.
type PayrollRun struct {
	ID         int64      `json:"id"`
	SchoolID   int64      `json:"schoolId"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	Status     string     `json:"status"`
	Total      float64    `json:"total"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

package payroll

type PaymentAction string

const (
	PaymentActionMarkPending PaymentAction = "mark_pending"
	PaymentActionMarkPaid    PaymentAction = "mark_paid"
	PaymentActionCancel      PaymentAction = "cancel"
)

// NextPaymentStatus applies action to a payslip in status from.
func NextPaymentStatus(from PaymentStatus, action PaymentAction) (PaymentStatus, error) {
	switch action {
	case PaymentActionMarkPending:
		if from == PaymentStatusDraft {
			return PaymentStatusPending, nil
		}
	case PaymentActionMarkPaid:
		if from == PaymentStatusDraft || from == PaymentStatusPending {
			return PaymentStatusPaid, nil
		}
	case PaymentActionCancel:
		if from == PaymentStatusDraft || from == PaymentStatusPending {
			return PaymentStatusCancelled, nil
		}
	}
	return from, ErrInvalidPaymentChange
}

package audit

import "errors"

var ErrInvalidRecordType = errors.New("record_type must be one of: leave_request, payslip, performance_review")

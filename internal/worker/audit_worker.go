package worker

import (
	"github.com/campus-suite/records-portal/internal/service"
)

// StartAuditRecorder registers the audit-trail event handlers.
func StartAuditRecorder(recorder *service.AuditRecorder) {
	if recorder == nil {
		return
	}
	recorder.RegisterHandlers()
}

package dirgroup

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "dirgroup_operations_total",
			Help: "Number of directory group operations, differentiated by operation and result.",
		},
		[]string{"operation", "result"},
	)

	orphanRejectionsTotal = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "dirgroup_orphan_rejections_total",
			Help: "Number of changes rejected because a directory group would lose all local groups.",
		},
	)

	protectedRoleTransitionsTotal = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "dirgroup_protected_role_transitions_total",
			Help: "Number of directory groups moved away from the read-only super admin role.",
		},
	)

	auditFailuresTotal = promauto.NewCounter( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "dirgroup_audit_failures_total",
			Help: "Number of directory group changes whose audit entry could not be written.",
		},
	)
)

func observe(operation string, err error) {
	operationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrDuplicateName):
		return "duplicate_name"
	case errors.Is(err, ErrUnknownReference):
		return "unknown_reference"
	case errors.Is(err, ErrOrphanGroup):
		return "orphan"
	case errors.Is(err, ErrNoDirectoryGroup):
		return "no_match"
	default:
		return "error"
	}
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FamilyEdgesRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "family_edges_removed_total", Help: "Duplicate guardian edges removed by repair operations",
	})
	FamilyGroupsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "family_groups_created_total", Help: "Singleton family groups created by split/reorganize",
	})
	FamilyRepairErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "family_repair_errors_total", Help: "Per-item failures during bulk family repair",
	})
	TeachersLinked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice", Name: "teachers_linked_total", Help: "Teacher records linked to profiles",
	})
)

func init() {
	prometheus.MustRegister(FamilyEdgesRemoved, FamilyGroupsCreated, FamilyRepairErrors, TeachersLinked)
}

func Handler() http.Handler { return promhttp.Handler() }

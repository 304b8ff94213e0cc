package fleet

import (
	"fmt"
	texttmpl "text/template"

	"github.com/trezcool/opsdesk/core"
)

var dueAlertTmpl = texttmpl.Must(texttmpl.New("due-alert").Parse(
	`Vehicle {{.Vehicle}} is at {{.Odometer}} km.

The following components are due for service:
{{range .Components}}
  - {{.Component}}: {{.Remaining}} km remaining ({{printf "%.1f" .PercentLife}}% life left), last serviced at {{.LastService}} km
{{- end}}
`))

type dueAlertData struct {
	Vehicle    string
	Odometer   int
	Components []ComponentStatus
}

// newlyDue returns the components of after that were not due in before.
// Both reports come from the same planner, hence share the same order.
func newlyDue(before, after []ComponentStatus) []ComponentStatus {
	var due []ComponentStatus
	for i, cs := range after {
		if cs.State != StateDue {
			continue
		}
		if i < len(before) && before[i].Component == cs.Component && before[i].State == StateDue {
			continue
		}
		due = append(due, cs)
	}
	return due
}

func (svc *Service) sendDueAlert(vehicle string, odometer int, due []ComponentStatus) {
	if svc.mailSvc == nil || len(svc.recipients) == 0 || len(due) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:       svc.recipients,
		Subject:  fmt.Sprintf("Vehicle %s: %d component(s) due for service", vehicle, len(due)),
		Template: dueAlertTmpl,
		TemplateData: dueAlertData{
			Vehicle:    vehicle,
			Odometer:   odometer,
			Components: due,
		},
	})
}

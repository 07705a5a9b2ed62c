package costing

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/pricebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTotals_Additivity checks that per-associate totals over the assigned
// associates add up to every days field in both hierarchies.
func TestTotals_Additivity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 100; trial++ {
		p := domain.NewProjectPricing("proj-1", domain.DefaultPricingDefaults(), testNow)
		var fieldSum float64

		for ph := 0; ph < rng.Intn(3)+1; ph++ {
			phase := p.AddPhase(fmt.Sprintf("Phase %d", ph), testNow)
			wsID := phase.Workstreams[0].ID
			for li := 0; li < rng.Intn(3)+1; li++ {
				item, err := p.AddLineItem(phase.ID, wsID, testNow)
				require.NoError(t, err)
				for k := 0; k < rng.Intn(4); k++ {
					person := fmt.Sprintf("p%d", rng.Intn(5))
					days := float64(rng.Intn(20)) + 0.5*float64(rng.Intn(2))
					require.NoError(t, p.AddAssigneeToLineItem(phase.ID, wsID, item.ID, person, testNow))
					require.NoError(t, p.UpdateAssigneeDays(phase.ID, wsID, item.ID, person, days, testNow))
				}
			}
		}
		for k := 0; k < rng.Intn(6); k++ {
			task := fmt.Sprintf("t%d", rng.Intn(3))
			person := fmt.Sprintf("p%d", rng.Intn(5))
			require.NoError(t, p.AddTaskAssignee("m1", task, person, testNow))
			require.NoError(t, p.UpdateTaskAssignee("m1", task, person,
				domain.TaskAssigneeUpdate{Days: f64(float64(rng.Intn(10)))}, testNow))
		}

		for _, ph := range p.Phases {
			for _, ws := range ph.Workstreams {
				for _, li := range ws.LineItems {
					for _, a := range li.Assignees {
						fieldSum += a.Days
					}
				}
			}
		}
		for _, m := range p.MilestonePricing {
			for _, task := range m.Tasks {
				for _, a := range task.Assignees {
					fieldSum += a.Days
				}
			}
		}

		var perAssociate float64
		for _, person := range AssignedAssociates(p) {
			perAssociate += AssociateTotalDays(p, person)
		}

		assert.Equal(t, fieldSum, perAssociate, "trial %d", trial)
		assert.Equal(t, fieldSum, ProjectTotals(p).TotalDays, "trial %d", trial)
	}
}

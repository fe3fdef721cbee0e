package job

import (
	"context"
	"time"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/registry"
	"github.com/robfig/cron"
)

// RegistryPollJob silently refreshes the post registry so status changes
// (otp_required -> scheduled -> completed) show up without user action.
type RegistryPollJob struct {
	reg *registry.Registry
}

func NewRegistryPollJob(reg *registry.Registry) *RegistryPollJob {
	return &RegistryPollJob{reg: reg}
}

func (j *RegistryPollJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	j.reg.SilentRefresh(ctx)
}

// Poller runs a job on a cron spec until stopped. After Stop returns, no
// further runs are scheduled.
type Poller struct {
	c *cron.Cron
}

func StartPoller(spec string, run func()) (*Poller, error) {
	c := cron.New()
	if err := c.AddFunc(spec, run); err != nil {
		return nil, err
	}
	c.Start()
	return &Poller{c: c}, nil
}

func (p *Poller) Stop() {
	p.c.Stop()
}

package services

import (
	"fmt"

	"stash/internal/models"
	"stash/internal/repositories"
	"stash/pkg/rabbitmq"
)

// Cascade describes a pending tag mutation to replay across every other
// category's partition. An empty NewName means the tag was deleted.
type Cascade struct {
	OldName string
	NewName string
}

// CascadeRunner executes pending cascades. Every partition is attempted even
// when an earlier one fails; failures never propagate to the request that
// triggered the mutation, but each one is logged and published so the gap is
// observable.
type CascadeRunner struct {
	stores   map[string]repositories.Store // keyed by category plural
	logs     *LogService
	mqClient *rabbitmq.Client
}

func NewCascadeRunner(stores map[string]repositories.Store, logs *LogService, mqClient *rabbitmq.Client) *CascadeRunner {
	return &CascadeRunner{stores: stores, logs: logs, mqClient: mqClient}
}

// Run replays the cascade across every partition except tags itself.
func (r *CascadeRunner) Run(user string, cascade Cascade) {
	failures := map[string]any{}
	for plural, store := range r.stores {
		if plural == models.TagCategory.Plural {
			continue
		}
		var err error
		if cascade.NewName == "" {
			err = store.CascadeTagDelete(cascade.OldName)
		} else {
			err = store.CascadeTagRename(cascade.OldName, cascade.NewName)
		}
		if err != nil {
			failures[plural] = err.Error()
		}
	}
	if len(failures) > 0 && r.logs != nil {
		r.logs.Error(user, fmt.Sprintf("Tag cascade for [%s] failed in some partitions", cascade.OldName), failures)
	}
	if r.mqClient != nil {
		event := map[string]any{
			"old_name": cascade.OldName,
			"new_name": cascade.NewName,
			"failures": failures,
		}
		_ = r.mqClient.Publish("tag.cascade", event)
	}
}

package main

import (
	"context"
	"encoding/json"

	"github.com/myrjola/soverain/internal/catalog"
	"github.com/myrjola/soverain/internal/contexthelpers"
	"github.com/myrjola/soverain/internal/errors"
	"github.com/myrjola/soverain/internal/journal"
	"github.com/myrjola/soverain/internal/models"
)

const (
	// journalSessionKey holds the JSON encoded journal.Snapshot of the visitor.
	journalSessionKey = "journal"
	// catalogSessionKey holds the JSON encoded catalog entries the visitor added.
	catalogSessionKey = "catalog"
	profileSessionKey = "profile"
	flashSessionKey   = "flash"
)

// visitor is the state one browser session owns. It is rebuilt from the session on every request.
type visitor struct {
	journal   *journal.Store
	catalog   *catalog.Registry
	additions []models.CatalogEntry
	profile   string
}

func (app *application) loadVisitor(ctx context.Context) (*visitor, error) {
	v := &visitor{profile: contexthelpers.ActiveProfile(ctx)}

	var snapshot journal.Snapshot
	if raw := app.sessionManager.GetBytes(ctx, journalSessionKey); raw != nil {
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			return nil, errors.Wrap(err, "decode journal snapshot")
		}
	}
	v.journal = journal.Restore(snapshot)

	if raw := app.sessionManager.GetBytes(ctx, catalogSessionKey); raw != nil {
		if err := json.Unmarshal(raw, &v.additions); err != nil {
			return nil, errors.Wrap(err, "decode catalog additions")
		}
	}
	var err error
	if v.catalog, err = app.catalog.WithAdditions(v.additions); err != nil {
		return nil, errors.Wrap(err, "restore visitor catalog")
	}
	return v, nil
}

// activeProfile returns the profile selected in the session, or nil when none is selected or it no longer exists.
func (v *visitor) activeProfile() *models.Profile {
	if v.profile == "" {
		return nil
	}
	p, err := v.journal.Profile(v.profile)
	if err != nil {
		return nil
	}
	return p
}

func (app *application) saveJournal(ctx context.Context, v *visitor) error {
	raw, err := json.Marshal(v.journal.Snapshot())
	if err != nil {
		return errors.Wrap(err, "encode journal snapshot")
	}
	app.sessionManager.Put(ctx, journalSessionKey, raw)
	return nil
}

func (app *application) saveAdditions(ctx context.Context, v *visitor) error {
	raw, err := json.Marshal(v.additions)
	if err != nil {
		return errors.Wrap(err, "encode catalog additions")
	}
	app.sessionManager.Put(ctx, catalogSessionKey, raw)
	return nil
}

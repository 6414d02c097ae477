package service

import (
	"testing"

	"github.com/aussiebroadwan/dentalrecruit/internal/recruit/store/drivers/memory"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk/recruittest"
	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
)

type harness struct {
	srv      *recruittest.Server
	store    *memory.Store
	sessions *SessionService
	client   *recruitsdk.Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	srv := recruittest.New(t)
	st := memory.NewStore()
	sessions := NewSessionService(st, slogx.Discard())
	client := recruitsdk.NewClient(srv.BaseURL(),
		recruitsdk.WithTokenSource(sessions),
		recruitsdk.WithLogger(slogx.Discard()),
	)
	sessions.Client = client

	return &harness{srv: srv, store: st, sessions: sessions, client: client}
}

func posting(title, city string) recruitsdk.JobPosting {
	return recruitsdk.JobPosting{
		Title:                 title,
		QualificationRequired: "BDS",
		JobType:               recruitsdk.JobTypeFullTime,
		City:                  city,
		State:                 "MH",
		Description:           "Chairside dentistry",
	}
}

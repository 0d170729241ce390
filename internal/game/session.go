// Package game holds one play session: the catalog, the user's roster, the
// automatically drafted opponent roster, the season and a ledger of every
// roster change.
//
// A Session is not safe for concurrent use. Each method is one command; a
// command that returns an error leaves the session as it was, except that
// an autofill which cannot complete keeps the athletes it did pick.
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aatrey56/fpl-sim/internal/apperr"
	"github.com/aatrey56/fpl-sim/internal/catalog"
	"github.com/aatrey56/fpl-sim/internal/draft"
	"github.com/aatrey56/fpl-sim/internal/ledger"
	"github.com/aatrey56/fpl-sim/internal/logger"
	"github.com/aatrey56/fpl-sim/internal/model"
	"github.com/aatrey56/fpl-sim/internal/points"
	"github.com/aatrey56/fpl-sim/internal/reconcile"
	"github.com/aatrey56/fpl-sim/internal/season"
	"github.com/aatrey56/fpl-sim/internal/squad"
	"github.com/aatrey56/fpl-sim/internal/store"
	"github.com/aatrey56/fpl-sim/internal/summary"
)

const (
	UserOwner     = "user"
	OpponentOwner = "bot"
)

type Options struct {
	Logger *logrus.Logger
	// Reports, when set, receives per-round results, and the ledger and
	// season summary once the season ends or Finish is called.
	Reports *store.FileStore
	Budget  float64
	Rounds  int
	Quotas  model.Quotas
}

type Session struct {
	ID string

	cat      *catalog.Catalog
	user     *squad.Roster
	opponent *squad.Roster
	season   *season.Season
	ledger   *ledger.Ledger
	rng      points.Rand
	log      *logrus.Entry
	reports  *store.FileStore

	// OpponentDraft is the result of drafting the opponent at session start.
	OpponentDraft draft.Result
}

type ClearResult struct {
	Refunded     []model.Athlete `json:"refunded"`
	Amount       float64         `json:"amount"`
	Remaining    float64         `json:"remaining_budget"`
	AlreadyEmpty bool            `json:"already_empty"`
}

type Status struct {
	SessionID     string         `json:"session_id"`
	Budget        float64        `json:"budget"`
	SquadSize     int            `json:"squad_size"`
	Round         int            `json:"round"`
	Rounds        int            `json:"rounds"`
	UserTotal     int            `json:"user_total"`
	OpponentTotal int            `json:"opponent_total"`
	State         season.State   `json:"state"`
	Verdict       season.Verdict `json:"verdict,omitempty"`
}

// New starts a session over cat and drafts the opponent straight away.
func New(cat *catalog.Catalog, rng points.Rand, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Budget <= 0 {
		opts.Budget = model.TotalBudget
	}
	if opts.Rounds <= 0 {
		opts.Rounds = model.TotalRounds
	}
	if opts.Quotas == nil {
		opts.Quotas = model.DefaultQuotas()
	}

	id := uuid.NewString()
	s := &Session{
		ID:       id,
		cat:      cat,
		user:     squad.New(UserOwner, opts.Budget, opts.Quotas),
		opponent: squad.New(OpponentOwner, opts.Budget, opts.Quotas),
		season:   season.New(opts.Rounds),
		ledger:   ledger.New(id),
		rng:      rng,
		log:      opts.Logger.WithField("session_id", id),
		reports:  opts.Reports,
	}

	s.OpponentDraft = s.fill(s.opponent)
	s.log.WithFields(logrus.Fields{
		"catalog_size": cat.Len(),
		"bot_full":     s.OpponentDraft.Full,
	}).Info("session started")
	return s
}

// Buy moves the named athlete from the catalog onto the user's roster.
func (s *Session) Buy(name string) (model.Athlete, error) {
	a, ok := s.cat.Lookup(name)
	if !ok {
		return model.Athlete{}, apperr.New(apperr.CodeNotFound, "player not found: "+name)
	}
	if err := s.user.CanAdmit(a); err != nil {
		s.log.WithError(err).WithField("athlete", name).Debug("buy rejected")
		return model.Athlete{}, err
	}
	a, err := s.cat.Take(name)
	if err != nil {
		return model.Athlete{}, err
	}
	s.user.Add(a)
	s.record(s.user, ledger.KindBuy, a, s.user.Remaining())
	s.log.WithFields(logrus.Fields{"athlete": a.Name, "price": a.Price}).Info("athlete bought")
	return a, nil
}

// Sell removes the user's athlete at 1-based index and refunds its price.
func (s *Session) Sell(index int) (model.Athlete, error) {
	a, err := s.user.Sell(index)
	if err != nil {
		return model.Athlete{}, err
	}
	s.record(s.user, ledger.KindSell, a, s.user.Remaining())
	s.log.WithFields(logrus.Fields{"athlete": a.Name, "price": a.Price}).Info("athlete sold")
	return a, nil
}

// Autofill tops up the user's roster with the drafter.
func (s *Session) Autofill() draft.Result {
	return s.fill(s.user)
}

// Clear refunds and empties the user's roster.
func (s *Session) Clear() ClearResult {
	if s.user.Len() == 0 {
		return ClearResult{AlreadyEmpty: true, Remaining: s.user.Remaining()}
	}
	refunded := s.user.Clear()
	amount := 0.0
	for _, a := range refunded {
		amount += a.Price
	}
	running := s.user.InitialBudget() - amount
	for _, a := range refunded {
		running += a.Price
		s.record(s.user, ledger.KindClear, a, running)
	}
	s.log.WithFields(logrus.Fields{"count": len(refunded), "amount": amount}).Info("squad cleared")
	return ClearResult{Refunded: refunded, Amount: amount, Remaining: s.user.Remaining()}
}

// SimulateRound plays the next round of the season.
func (s *Session) SimulateRound() (season.RoundResult, error) {
	res, err := s.season.Advance(s.rng, s.user, s.opponent)
	if err != nil {
		s.log.WithError(err).Debug("round rejected")
		return res, err
	}

	for _, p := range res.User.Players {
		if p.Event != points.NoEvent {
			s.log.WithFields(logrus.Fields{
				"athlete": p.Name,
				"event":   p.Event,
				"round":   res.Round,
			}).Info("penalty event")
		}
	}
	s.log.WithFields(logrus.Fields{
		"round":           res.Round,
		"user_points":     res.User.TotalPoints,
		"bot_points":      res.Opponent.TotalPoints,
		"user_total":      res.UserCumulative,
		"bot_total":       res.OpponentCumulative,
		"season_complete": res.Complete,
	}).Info("round simulated")

	if s.reports != nil {
		for _, r := range []*points.Result{res.User, res.Opponent} {
			rel := fmt.Sprintf("sessions/%s/rounds/%d/%s.json", s.ID, res.Round, r.Owner)
			if err := points.WriteResult(s.reports.Path(rel), r); err != nil {
				s.log.WithError(err).Warn("writing round report")
			}
		}
		if res.Complete {
			if err := s.Finish(); err != nil {
				s.log.WithError(err).Warn("writing season reports")
			}
		}
	}
	return res, nil
}

// Squad lists the user's roster.
func (s *Session) Squad() []squad.Entry {
	return s.user.List()
}

// OpponentSquad lists the opponent's roster.
func (s *Session) OpponentSquad() []squad.Entry {
	return s.opponent.List()
}

// Available lists catalog athletes for a position and club.
func (s *Session) Available(position model.Position, club string) []model.Athlete {
	return s.cat.Filter(position, club)
}

func (s *Session) Status() Status {
	return Status{
		SessionID:     s.ID,
		Budget:        s.user.Remaining(),
		SquadSize:     s.user.Len(),
		Round:         s.season.Round(),
		Rounds:        s.season.Rounds(),
		UserTotal:     s.season.UserTotal(),
		OpponentTotal: s.season.OpponentTotal(),
		State:         s.season.State(),
		Verdict:       s.season.Verdict(),
	}
}

// Done reports whether the season has been played out.
func (s *Session) Done() bool {
	return s.season.State() == season.Complete
}

// Ledger returns the session's transaction log.
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// Audit replays the ledger and compares it with both rosters.
func (s *Session) Audit() *reconcile.Report {
	return s.audit(s.snapshots())
}

func (s *Session) audit(snaps map[string]*ledger.RosterSnapshot) *reconcile.Report {
	return reconcile.BuildReport(s.ledger, s.season.Round(), snaps, []string{UserOwner, OpponentOwner})
}

func (s *Session) snapshots() map[string]*ledger.RosterSnapshot {
	round := s.season.Round()
	return map[string]*ledger.RosterSnapshot{
		UserOwner:     ledger.BuildRosterSnapshot(s.user, round),
		OpponentOwner: ledger.BuildRosterSnapshot(s.opponent, round),
	}
}

func (s *Session) Summary() *summary.SeasonSummary {
	return summary.BuildSeasonSummary(s.ID, s.season)
}

// Finish writes the ledger, both roster snapshots, the audit taken against
// those snapshots and the season summary to the report store. It does
// nothing without one.
func (s *Session) Finish() error {
	if s.reports == nil {
		return nil
	}
	base := fmt.Sprintf("sessions/%s/", s.ID)
	if err := ledger.WriteLedger(s.reports.Path(base+"ledger.json"), s.ledger); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	snaps := s.snapshots()
	for _, owner := range []string{UserOwner, OpponentOwner} {
		if err := ledger.WriteRosterSnapshot(s.reports.Path(base+"roster_"+owner+".json"), snaps[owner]); err != nil {
			return fmt.Errorf("writing %s roster: %w", owner, err)
		}
	}
	if err := reconcile.WriteReport(s.reports.Path(base+"audit.json"), s.audit(snaps)); err != nil {
		return fmt.Errorf("writing audit: %w", err)
	}
	if err := summary.WriteSeasonSummary(s.reports.Path(base+"summary.json"), s.Summary()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

func (s *Session) fill(r *squad.Roster) draft.Result {
	running := r.Remaining()
	res := draft.Fill(s.cat, r)
	for _, a := range res.Picked {
		running -= a.Price
		s.record(r, ledger.KindAutofill, a, running)
	}
	fields := logrus.Fields{
		"roster": r.Owner,
		"picked": len(res.Picked),
		"size":   res.Size,
		"budget": res.Remaining,
	}
	switch {
	case res.AlreadyFull:
		s.log.WithFields(fields).Debug("roster already full")
	case !res.Full:
		s.log.WithFields(fields).Warn("could not fill roster within budget")
	default:
		s.log.WithFields(fields).Info("roster drafted")
	}
	return res
}

func (s *Session) record(r *squad.Roster, kind ledger.Kind, a model.Athlete, budgetAfter float64) {
	s.ledger.Record(ledger.Entry{
		Owner:       r.Owner,
		Kind:        kind,
		Athlete:     a.Name,
		Position:    a.Position,
		Price:       a.Price,
		BudgetAfter: budgetAfter,
		Round:       s.season.Round(),
	})
}

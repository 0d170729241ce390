package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aatrey56/fpl-sim/internal/game"
	"github.com/aatrey56/fpl-sim/internal/model"
	"github.com/aatrey56/fpl-sim/internal/season"
	"github.com/aatrey56/fpl-sim/internal/squad"
)

type BuyArgs struct {
	Name string `json:"name" jsonschema:"Exact player name (required)"`
}

type SellArgs struct {
	Index int `json:"index" jsonschema:"1-based position in your squad listing (required)"`
}

type AvailableArgs struct {
	Position string `json:"position,omitempty" jsonschema:"Attacker|Midfielder|Defender|Goalkeeper (empty = all)"`
	Club     string `json:"club,omitempty" jsonschema:"Club name (empty = all)"`
}

type NoArgs struct{}

// gameServer serializes tool calls onto one session.
type gameServer struct {
	mu   sync.Mutex
	sess *game.Session
}

type buyOutput struct {
	Bought    model.Athlete `json:"bought"`
	Remaining float64       `json:"remaining_budget"`
	SquadSize int           `json:"squad_size"`
}

type sellOutput struct {
	Sold      model.Athlete `json:"sold"`
	Remaining float64       `json:"remaining_budget"`
	SquadSize int           `json:"squad_size"`
}

type squadOutput struct {
	Owner     string        `json:"owner"`
	Remaining float64       `json:"remaining_budget"`
	Members   []squad.Entry `json:"members"`
}

type availableOutput struct {
	Position model.Position  `json:"position,omitempty"`
	Club     string          `json:"club,omitempty"`
	Count    int             `json:"count"`
	Players  []model.Athlete `json:"players"`
}

func (g *gameServer) buy(args BuyArgs) ([]byte, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	a, err := g.sess.Buy(name)
	if err != nil {
		return nil, err
	}
	st := g.sess.Status()
	return marshal(buyOutput{Bought: a, Remaining: st.Budget, SquadSize: st.SquadSize})
}

func (g *gameServer) sell(args SellArgs) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, err := g.sess.Sell(args.Index)
	if err != nil {
		return nil, err
	}
	st := g.sess.Status()
	return marshal(sellOutput{Sold: a, Remaining: st.Budget, SquadSize: st.SquadSize})
}

func (g *gameServer) simulate() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, err := g.sess.SimulateRound()
	if err != nil {
		return nil, err
	}
	return marshal(res)
}

func (g *gameServer) autofill() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return marshal(g.sess.Autofill())
}

func (g *gameServer) clear() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return marshal(g.sess.Clear())
}

func (g *gameServer) roster(opponent bool) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := squadOutput{Owner: game.UserOwner, Remaining: g.sess.Status().Budget, Members: g.sess.Squad()}
	if opponent {
		out = squadOutput{Owner: game.OpponentOwner, Remaining: g.sess.OpponentDraft.Remaining, Members: g.sess.OpponentSquad()}
	}
	return marshal(out)
}

func (g *gameServer) available(args AvailableArgs) ([]byte, error) {
	var pos model.Position
	if strings.TrimSpace(args.Position) != "" {
		p, err := model.ParsePosition(args.Position)
		if err != nil {
			return nil, err
		}
		pos = p
	}
	club := strings.TrimSpace(args.Club)

	g.mu.Lock()
	defer g.mu.Unlock()
	players := g.sess.Available(pos, club)
	return marshal(availableOutput{Position: pos, Club: club, Count: len(players), Players: players})
}

type statusOutput struct {
	game.Status
	Complete bool `json:"complete"`
}

func (g *gameServer) status() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	st := g.sess.Status()
	return marshal(statusOutput{Status: st, Complete: st.State == season.Complete})
}

func (g *gameServer) audit() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return marshal(g.sess.Audit())
}

func marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Package game implements the blackjack round engine.
//
// The main type is Engine, which owns a deck.Shoe, the seated players and
// the dealer, and plays one complete round per call to PlayRound.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	rules := game.DefaultRules()
//	shoe := deck.NewShoe(rules.Decks, rng)
//	alice, _ := game.NewPlayer("Alice", 1000, strat)
//	engine := game.NewEngine(rules, shoe, []*game.Player{alice}, recorder, logger)
//	for range 1000 {
//	    if err := engine.PlayRound(); err != nil {
//	        return err
//	    }
//	}
//
// # Round Phases
//
// A round runs a fixed pipeline and no phase is revisited:
//   - reshuffle check (never mid-round)
//   - hand reset
//   - bet placement through each player's Strategy
//   - deal: dealer up card, two cards per player, dealer hole card
//   - player turns, hand slot by hand slot, including slots added by splits
//   - dealer draws to 17
//   - settlement, the only phase that credits balances
//   - one statistics.Row per player hand
//
// Every card leaving the shoe passes through the engine's Counter, so the
// Hi-Lo running count and true count stay in lockstep with the shoe.
//
// # Deterministic Testing
//
// Use deck.NewShoeFromCards to stack the exact cards a round will see and a
// scripted Strategy to drive decisions.
package game

package main

import (
	"fmt"

	"github.com/lox/blackjack/internal/strategy"
)

type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(g *Globals) error {
	g.setupColor()
	fmt.Println(headerStyle.Render("Strategies"))
	for _, name := range strategy.Names() {
		fmt.Printf("  %s %s\n", nameStyle.Width(18).Render(name), strategy.Describe(name))
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ezBadminton/grouprank/core"
)

func printStandings(w io.Writer, group *core.Group, standings *core.Standings) error {
	if group.Name != "" {
		fmt.Fprintf(w, "Group %v\n", group.Name)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTeam\tP\tW\tL\tRounds\tPoints\tDraws\t")
	for _, team := range standings.Ranks() {
		m := standings.Metrics[team]
		name := team
		if m.Withdrawn {
			name += " (withdrawn)"
		}
		fmt.Fprintf(
			tw,
			"%v\t%v\t%v\t%v\t%v\t%+d\t%v\t%v\t\n",
			standings.RankOf(team), name, m.NumMatches, m.Wins, m.Losses,
			m.RoundDifference, m.Points, m.Draws,
		)
	}
	return tw.Flush()
}

func printPrediction(w io.Writer, p *core.Prediction) error {
	goal := fmt.Sprintf("%v finishes at rank %v", p.Target, p.Rank)
	if p.Rank > 1 {
		goal += " or better"
	}

	switch {
	case p.Guaranteed():
		fmt.Fprintf(w, "%v in every scenario.\n", goal)
		return nil
	case p.Impossible():
		fmt.Fprintf(w, "There is no way that %v.\n", goal)
		return nil
	}

	switch {
	case len(p.Scenarios) == 0 && p.Reversed:
		fmt.Fprintf(w, "%v unless it loses on the round difference when:\n", goal)
		printScenarios(w, p.RoundScenarios)
	case len(p.Scenarios) == 0:
		fmt.Fprintf(w, "%v only if it wins on the round difference when:\n", goal)
		printScenarios(w, p.RoundScenarios)
	default:
		if p.Reversed {
			fmt.Fprintf(w, "%v unless:\n", goal)
		} else {
			fmt.Fprintf(w, "%v only if:\n", goal)
		}
		printScenarios(w, p.Scenarios)

		if len(p.RoundScenarios) > 0 {
			fmt.Fprintln(w, "The round difference decides if:")
			printScenarios(w, p.RoundScenarios)
		}
	}

	fmt.Fprintf(
		w,
		"(%v scenarios: %v reached, %v decided by rounds, %v missed)\n",
		p.Counts.Leaves, p.Counts.Win, p.Counts.Round, p.Counts.Fail,
	)
	return nil
}

func printScenarios(w io.Writer, scenarios []core.Scenario) {
	for _, s := range scenarios {
		if s.Unconditional() {
			fmt.Fprintln(w, "  - unconditional")
			continue
		}
		outcomes := make([]string, 0, len(s.Outcomes))
		for _, o := range s.Outcomes {
			outcomes = append(outcomes, formatOutcome(o))
		}
		fmt.Fprintf(w, "  - %v\n", strings.Join(outcomes, ", "))
	}
}

func formatOutcome(o core.Outcome) string {
	loser := o.Team1
	if o.Winner == o.Team1 {
		loser = o.Team2
	}
	if o.Seq > 0 {
		return fmt.Sprintf("%v beats %v (meeting %v)", o.Winner, loser, o.Seq+1)
	}
	return fmt.Sprintf("%v beats %v", o.Winner, loser)
}

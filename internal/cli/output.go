package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.Player:
		fmt.Fprintf(o.w, "Player: %s (%s)\n", v.Name, v.ID)
	case response.PlayerList:
		o.printPlayers(v.Players)
	case model.Template:
		fmt.Fprintf(o.w, "Template: %s (%s)\nScoring: %s\n", v.Name, v.ID, describeScoring(v.ScoringType))
	case response.TemplateList:
		o.printTemplates(v.Templates)
	case response.Session:
		o.printSession(v)
	case response.Totals:
		fmt.Fprintf(o.w, "Totals: %s\n", joinScores(v.Totals))
	case model.Game:
		o.printFinishedGame(&v)
	case response.GameList:
		o.printGames(v.Games)
	case response.TopPlayers:
		o.printTopPlayers(v.Players)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	case model.SessionEvent:
		o.printEvent(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) table() *tabwriter.Writer {
	return tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
}

func (o *Output) printPlayers(players []model.Player) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players")
		return
	}
	tw := o.table()
	fmt.Fprintln(tw, "ID\tNAME")
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%s\n", p.ID, p.Name)
	}
	_ = tw.Flush()
}

func (o *Output) printTemplates(templates []model.Template) {
	if len(templates) == 0 {
		fmt.Fprintln(o.w, "No templates")
		return
	}
	tw := o.table()
	fmt.Fprintln(tw, "ID\tNAME\tSCORING")
	for _, t := range templates {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name, t.ScoringType)
	}
	_ = tw.Flush()
}

func (o *Output) printSession(s response.Session) {
	if s.Game == nil {
		fmt.Fprintln(o.w, "No game in progress")
		return
	}
	g := s.Game
	fmt.Fprintf(o.w, "Game: %s (%s)\n", g.Template.Name, g.ID)
	fmt.Fprintf(o.w, "Scoring: %s\n", describeScoring(g.Template.ScoringType))
	fmt.Fprintf(o.w, "Started: %s\n", g.StartTime.Local().Format(time.DateTime))
	o.printScoreSheet(g, s.Totals)
}

// printScoreSheet renders one row per round and a totals row
func (o *Output) printScoreSheet(g *model.Game, totals []float64) {
	tw := o.table()

	header := []string{"ROUND"}
	for i, p := range g.Players {
		header = append(header, fmt.Sprintf("%s [%d]", p.Name, i))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i, round := range g.Rounds {
		row := []string{strconv.Itoa(i)}
		for _, score := range round {
			row = append(row, formatScore(score))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	row := []string{"TOTAL"}
	for _, t := range totals {
		row = append(row, formatFloat(t))
	}
	fmt.Fprintln(tw, strings.Join(row, "\t"))
	_ = tw.Flush()
}

func (o *Output) printEvent(e model.SessionEvent) {
	switch {
	case e.Game == nil:
		fmt.Fprintf(o.w, "[%s] no game in progress\n", e.Type)
	case len(e.Totals) > 0:
		fmt.Fprintf(o.w, "[%s] %s (%s) totals: %s\n", e.Type, e.Game.Template.Name, e.Game.ID, joinScores(e.Totals))
	default:
		fmt.Fprintf(o.w, "[%s] %s (%s)\n", e.Type, e.Game.Template.Name, e.Game.ID)
	}
}

func (o *Output) printFinishedGame(g *model.Game) {
	fmt.Fprintf(o.w, "Game over: %s (%s)\n", g.Template.Name, g.ID)
	totals := make([]float64, len(g.Players))
	for i, p := range g.Players {
		totals[i] = p.TotalScore
	}
	o.printScoreSheet(g, totals)
	if g.Winner != nil {
		fmt.Fprintf(o.w, "Winner: %s (%s)\n", g.Winner.Name, formatFloat(g.Winner.TotalScore))
	}
}

func (o *Output) printGames(games []*model.Game) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No finished games")
		return
	}
	tw := o.table()
	fmt.Fprintln(tw, "FINISHED\tGAME\tPLAYERS\tROUNDS\tWINNER")
	for _, g := range games {
		names := make([]string, len(g.Players))
		for i, p := range g.Players {
			names[i] = p.Name
		}
		finished := "-"
		if g.EndTime != nil {
			finished = g.EndTime.Local().Format(time.DateTime)
		}
		winner := "-"
		if g.Winner != nil {
			winner = fmt.Sprintf("%s (%s)", g.Winner.Name, formatFloat(g.Winner.TotalScore))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", finished, g.Template.Name, strings.Join(names, ", "), len(g.Rounds), winner)
	}
	_ = tw.Flush()
}

func (o *Output) printTopPlayers(players []model.PlayerCount) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No finished games")
		return
	}
	tw := o.table()
	fmt.Fprintln(tw, "PLAYER\tGAMES")
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%d\n", p.Name, p.Count)
	}
	_ = tw.Flush()
}

func describeScoring(s model.ScoringType) string {
	if s == model.ScoringReverse {
		return "reverse (lowest total wins)"
	}
	return "normal (highest total wins)"
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return formatFloat(*score)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinScores(scores []float64) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = formatFloat(s)
	}
	return strings.Join(parts, ", ")
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scorepad/internal/api"
	"github.com/mcoot/scorepad/internal/api/response"
	"github.com/mcoot/scorepad/internal/factory"
	"github.com/mcoot/scorepad/internal/model"
	"github.com/mcoot/scorepad/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		Roster:            s.app.Roster,
		Templates:         s.app.Templates,
		History:           s.app.History,
		SessionController: s.app.SessionController,
		Events:            s.app.Events,
	}))
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
	s.NoError(s.app.Close())
}

// run executes the CLI in-process and returns stdout
func (s *CLISuite) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--server", s.server.URL}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func (s *CLISuite) runJSON(result any, args ...string) {
	out, err := s.run(append([]string{"-o", "json"}, args...)...)
	s.Require().NoError(err, out)
	s.Require().NoError(json.Unmarshal([]byte(out), result), out)
}

func (s *CLISuite) TestHealth() {
	out, err := s.run("health")
	s.Require().NoError(err)
	s.Equal("Status: ok\n", out)
}

func (s *CLISuite) TestPlayerCommands() {
	s.app.MockRandom.QueueID("p1")

	out, err := s.run("player", "add", "Alice")
	s.Require().NoError(err)
	s.Equal("Player: Alice (p1)\n", out)

	out, err = s.run("player", "rename", "p1", "Alicia")
	s.Require().NoError(err)
	s.Contains(out, "Alicia")

	var list response.PlayerList
	s.runJSON(&list, "player", "list")
	s.Equal([]model.Player{{ID: "p1", Name: "Alicia"}}, list.Players)

	out, err = s.run("player", "rm", "p1")
	s.Require().NoError(err)
	s.Equal("Player removed\n", out)

	out, err = s.run("player", "list")
	s.Require().NoError(err)
	s.Equal("No players\n", out)
}

func (s *CLISuite) TestPlayerNotFoundError() {
	_, err := s.run("player", "show", "ghost")
	s.Require().Error(err)

	var reqErr *RequestError
	s.Require().ErrorAs(err, &reqErr)
	s.Equal(404, reqErr.Status)
	s.Equal("PLAYER_NOT_FOUND", reqErr.Code)
}

func (s *CLISuite) TestTemplateCommands() {
	s.app.MockRandom.QueueID("golf")

	var tmpl model.Template
	s.runJSON(&tmpl, "template", "add", "Golf", "--reverse")
	s.Equal(model.ScoringReverse, tmpl.ScoringType)

	out, err := s.run("template", "update", "golf", "--name", "Mini Golf")
	s.Require().NoError(err)
	s.Contains(out, "Template: Mini Golf (golf)")
	s.Contains(out, "lowest total wins")

	_, err = s.run("template", "update", "golf")
	s.Error(err)

	var list response.TemplateList
	s.runJSON(&list, "template", "list")
	s.Len(list.Templates, 2)
}

func (s *CLISuite) TestGameFlow() {
	s.app.MockRandom.QueueID("a", "b", "game")
	_, err := s.run("player", "add", "Alice")
	s.Require().NoError(err)
	_, err = s.run("player", "add", "Bob")
	s.Require().NoError(err)

	out, err := s.run("session", "show")
	s.Require().NoError(err)
	s.Equal("No game in progress\n", out)

	var started response.Session
	s.runJSON(&started, "session", "start", "-p", "a", "-p", "b")
	s.Equal(model.SessionInProgress, started.Status)

	_, err = s.run("session", "score", "0", "0", "12")
	s.Require().NoError(err)
	_, err = s.run("session", "score", "0", "1", "7.5")
	s.Require().NoError(err)

	out, err = s.run("session", "show")
	s.Require().NoError(err)
	s.Contains(out, "Alice [0]")
	s.Contains(out, "7.5")
	s.Contains(out, "TOTAL")

	out, err = s.run("session", "totals")
	s.Require().NoError(err)
	s.Equal("Totals: 12, 7.5\n", out)

	_, err = s.run("session", "score", "0", "0", "twelve")
	s.Error(err)

	out, err = s.run("session", "finish")
	s.Require().NoError(err)
	s.Contains(out, "Winner: Alice (12)")

	var games response.GameList
	s.runJSON(&games, "history", "list", "--limit", "1")
	s.Require().Len(games.Games, 1)
	s.Equal(model.GameID("game"), games.Games[0].ID)

	out, err = s.run("history", "top")
	s.Require().NoError(err)
	s.Contains(out, "Alice")
	s.Contains(out, "Bob")
}

func (s *CLISuite) TestStartRequiresPlayers() {
	_, err := s.run("session", "start")
	s.Error(err)
}

func (s *CLISuite) TestRejectsUnknownOutputFormat() {
	_, err := s.run("-o", "yaml", "health")
	s.Error(err)
}

func (s *CLISuite) TestSessionWatchSnapshot() {
	out, err := s.run("session", "watch", "--count", "1")
	s.Require().NoError(err)
	s.Equal("[session.snapshot] no game in progress\n", out)
}

func (s *CLISuite) TestSessionWatchStreamsChanges() {
	s.app.MockRandom.QueueID("a", "game")
	alice, err := s.app.Roster.Create(context.Background(), "Alice")
	s.Require().NoError(err)

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := s.run("session", "watch", "-n", "2")
		done <- result{out, err}
	}()

	s.Require().Eventually(func() bool {
		return s.app.Events.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = s.app.SessionController.StartByID(context.Background(), model.DefaultTemplate().ID, []model.PlayerID{alice.ID})
	s.Require().NoError(err)

	select {
	case r := <-done:
		s.Require().NoError(r.err)
		s.Equal("[session.snapshot] no game in progress\n[session.started] Default Game (game) totals: 0\n", r.out)
	case <-time.After(2 * time.Second):
		s.Fail("watch did not exit")
	}
}

func TestWebsocketURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/x", NewClient("http://localhost:8080/", time.Second).WebsocketURL("/x"))
	assert.Equal(t, "wss://example.com/x", NewClient("https://example.com", time.Second).WebsocketURL("/x"))
}

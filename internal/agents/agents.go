// Package agents maps household agents to the projects and cron jobs they
// own. Matching is data-driven: a small table of per-agent regex sets,
// compiled once, optionally replaced by a YAML file.
package agents

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/zhilongzheng/friday-tasks/internal/models"
)

// Agent is one entry of the matching table. Projects decides task ownership,
// Crons decides cron job ownership; the two sets differ for most agents.
type Agent struct {
	ID       string
	Label    string
	Projects []*regexp.Regexp
	Crons    []*regexp.Regexp
}

// MatchesTask reports whether a task belongs to this agent. Only tasks
// assigned to the agent runner count; ownership is then decided by the
// project field against the agent's project patterns.
func (a *Agent) MatchesTask(assignee, project string) bool {
	if assignee != models.AssigneeAgent {
		return false
	}
	for _, p := range a.Projects {
		if p.MatchString(project) {
			return true
		}
	}
	return false
}

// MatchesName reports whether a cron job name belongs to this agent.
func (a *Agent) MatchesName(name string) bool {
	for _, p := range a.Crons {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func compilePatterns(raw []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		out = append(out, regexp.MustCompile("(?i)"+p))
	}
	return out
}

// Builtin returns the default agent table.
func Builtin() []*Agent {
	mustAgent := func(id, label string, projects, crons []string) *Agent {
		return &Agent{
			ID:       id,
			Label:    label,
			Projects: compilePatterns(projects),
			Crons:    compilePatterns(crons),
		}
	}
	return []*Agent{
		mustAgent("alpha", "Alpha",
			[]string{`polymarket`, `trading`},
			[]string{`polymarket|alpha|trading|market|crypto|stock`}),
		mustAgent("hu", "HU",
			[]string{`\bhu\b`, `game`},
			[]string{`\bhu\b`}),
		mustAgent("aspen", "Aspen",
			[]string{`aspen`, `quant`, `atrade`, `nofx`},
			[]string{`aspen|atrade|nofx`}),
		mustAgent("artist", "Artist",
			[]string{`artist`, `design`, `avatar`, `image`, `banana`},
			[]string{`artist|image|banana`}),
		mustAgent("fridaytask", "FridayTask",
			[]string{`friday`, `infra`, `\btask\b`},
			[]string{`friday|task`}),
		mustAgent("knowledge", "Knowledge",
			[]string{`knowledge`, `learning`, `ai-push`, `finance-push`, `learn`, `study`},
			[]string{`knowledge|learn|study|daily.*news|ai.*news`}),
	}
}

type fileDef struct {
	Agents []struct {
		ID       string   `yaml:"id"`
		Label    string   `yaml:"label"`
		Projects []string `yaml:"projects"`
		Crons    []string `yaml:"crons"`
	} `yaml:"agents"`
}

// LoadFile reads an agent table from a YAML file, replacing the builtin one.
// Agents with no crons list reuse their project patterns for job names.
func LoadFile(path string) ([]*Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def fileDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var out []*Agent
	for _, d := range def.Agents {
		a := &Agent{ID: d.ID, Label: d.Label}
		if a.Label == "" {
			a.Label = d.ID
		}
		compile := func(raw []string) ([]*regexp.Regexp, error) {
			var res []*regexp.Regexp
			for _, p := range raw {
				re, err := regexp.Compile("(?i)" + p)
				if err != nil {
					return nil, fmt.Errorf("agent %s: pattern %q: %w", d.ID, p, err)
				}
				res = append(res, re)
			}
			return res, nil
		}
		if a.Projects, err = compile(d.Projects); err != nil {
			return nil, err
		}
		crons := d.Crons
		if len(crons) == 0 {
			crons = d.Projects
		}
		if a.Crons, err = compile(crons); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s defines no agents", path)
	}
	return out, nil
}

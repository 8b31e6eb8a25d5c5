package sdelite

import (
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/sdelite/internal/sderr"
)

// DDL returns the CREATE TABLE and CREATE INDEX statements the client's
// dialect would run for plan, in plan order, without a trailing semicolon.
func (c *Client) DDL(plan *Plan) []string {
	planned := make(map[string]bool, len(plan.tables))
	for _, t := range plan.tables {
		planned[t.Name] = true
	}
	inPlan := func(name string) bool { return planned[name] }

	var stmts []string
	for _, t := range plan.tables {
		stmts = append(stmts, c.dialect.CreateTableSQL(t, inPlan))
		stmts = append(stmts, c.dialect.CreateIndexSQL(t)...)
	}
	return stmts
}

// YAML renders the schema model of every table in the plan.
func (p *Plan) YAML() ([]byte, error) {
	out, err := yaml.Marshal(p.tables)
	if err != nil {
		return nil, sderr.Wrap(sderr.ErrInternal, err, "failed to render schema")
	}
	return out, nil
}

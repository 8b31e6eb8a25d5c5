package registry

import (
	"testing"

	"github.com/hlop3z/sdelite/internal/schema"
	"github.com/hlop3z/sdelite/internal/sderr"
)

func tbl(name string, fks ...string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		SourceFile: name + ".jsonl",
		Columns:    []schema.Column{schema.Required("id", schema.Integer)},
	}
	for _, ref := range fks {
		col := ref + "_ref"
		t.Columns = append(t.Columns, schema.Col(col, schema.Integer))
		t.ForeignKeys = append(t.ForeignKeys, schema.FK(col, ref))
	}
	return t
}

func TestNew_Valid(t *testing.T) {
	r, err := New([]*schema.Table{tbl("a"), tbl("b", "a"), tbl("c", "a", "b", "c")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if got := r.Dependencies("c"); len(got) != 2 {
		t.Errorf("Dependencies(c) = %v, want [a b]", got)
	}
	if got := r.Dependents("a"); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("Dependents(a) = %v, want [b c]", got)
	}
}

func TestNew_Invalid(t *testing.T) {
	withChild := tbl("a")
	withChild.ChildTables = []string{"missing"}

	dupCol := tbl("a")
	dupCol.Columns = append(dupCol.Columns, schema.Col("id", schema.Text))

	badFKCol := tbl("a")
	badFKCol.ForeignKeys = []schema.ForeignKey{schema.FK("nope", "a")}

	badArray := tbl("j", "a")
	badArray.ArraySource = schema.SimpleArray("items", "parent_id")

	tests := []struct {
		name   string
		tables []*schema.Table
		code   sderr.Code
	}{
		{"duplicate table", []*schema.Table{tbl("a"), tbl("a")}, sderr.ErrDuplicateTable},
		{"parent after child", []*schema.Table{tbl("b", "a"), tbl("a")}, sderr.ErrSchemaInvalid},
		{"unknown parent", []*schema.Table{tbl("b", "zzz")}, sderr.ErrSchemaInvalid},
		{"unknown child table", []*schema.Table{withChild}, sderr.ErrSchemaInvalid},
		{"duplicate column", []*schema.Table{dupCol}, sderr.ErrSchemaInvalid},
		{"fk column not declared", []*schema.Table{badFKCol}, sderr.ErrSchemaInvalid},
		{"array parent column not declared", []*schema.Table{tbl("a"), badArray}, sderr.ErrSchemaInvalid},
		{"empty name", []*schema.Table{{SourceFile: "x.jsonl"}}, sderr.ErrSchemaInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tables)
			if !sderr.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDefault_CatalogIsValid(t *testing.T) {
	r := Default()
	if r.Len() == 0 {
		t.Fatal("default registry is empty")
	}

	pos := make(map[string]int)
	for i, name := range r.Names() {
		pos[name] = i
	}

	for _, table := range r.All() {
		for _, dep := range table.Dependencies() {
			if pos[dep] >= pos[table.Name] {
				t.Errorf("%s appears before its parent %s", table.Name, dep)
			}
		}
		if table.IsJunction() && len(table.ChildTables) > 0 {
			t.Errorf("junction table %s declares child tables", table.Name)
		}
	}

	for _, name := range []string{"types", "blueprints", "blueprint_materials", "type_masteries", "planet_schematic_pins"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("Get(%q) not found", name)
		}
	}
}

func TestDefault_ChildTablesShareSourceFile(t *testing.T) {
	r := Default()
	for _, table := range r.All() {
		for _, child := range table.ChildTables {
			c, _ := r.Get(child)
			if c.SourceFile != table.SourceFile {
				t.Errorf("child %s reads %s, parent %s reads %s", child, c.SourceFile, table.Name, table.SourceFile)
			}
			if !c.IsJunction() {
				t.Errorf("child %s has no array source", child)
			}
		}
	}
}

package engine

// Database is an in-memory catalog of relations by name. It provides no
// locking: callers serialize update-vs-query access per relation themselves.
type Database struct {
	Name      string
	relations map[string]*Relation
}

func NewDatabase(name string) *Database {
	return &Database{
		Name:      name,
		relations: make(map[string]*Relation),
	}
}

// Add registers a relation, replacing any previous one with the same name.
func (db *Database) Add(rel *Relation) {
	db.relations[rel.Name] = rel
}

func (db *Database) Get(name string) (*Relation, error) {
	rel, ok := db.relations[name]
	if !ok {
		return nil, NewSchemaError(name, "", "relation not found")
	}
	return rel, nil
}

func (db *Database) Drop(name string) error {
	if _, ok := db.relations[name]; !ok {
		return NewSchemaError(name, "", "relation not found")
	}
	delete(db.relations, name)
	return nil
}

func (db *Database) List() []string {
	names := make([]string, 0, len(db.relations))
	for name := range db.relations {
		names = append(names, name)
	}
	return names
}

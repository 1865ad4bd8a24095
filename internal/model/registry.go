package model

// All lists every table managed by AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&HCP{},
		&Interaction{},
		&AgentTurn{},
	}
}

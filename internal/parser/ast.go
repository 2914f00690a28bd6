package parser

// Command is one console line.
type Command struct {
	Act     *ActCmd     `parser:"( @@"`
	Use     *UseCmd     `parser:"| @@"`
	Recall  *RecallCmd  `parser:"| @@"`
	End     *EndCmd     `parser:"| @@"`
	Status  *StatusCmd  `parser:"| @@"`
	Recipes *RecipesCmd `parser:"| @@"`
	Help    *HelpCmd    `parser:"| @@"`
	Quit    *QuitCmd    `parser:"| @@ )"`
}

// ActCmd performs a basic act: attack, block or charge.
type ActCmd struct {
	Verb   string      `parser:"@(\"attack\"|\"block\"|\"charge\")"`
	Target *TargetExpr `parser:"@@?"`
}

// TargetExpr maps the optional "to: N" block.
type TargetExpr struct {
	ID int `parser:"\"to\" \":\" @Int"`
}

// UseCmd uses the act in a slot.
type UseCmd struct {
	Slot   int         `parser:"\"use\" @Int"`
	Target *TargetExpr `parser:"@@?"`
}

// RecallCmd selects memory entries. Without a pick it only lists candidates.
type RecallCmd struct {
	Indices []int     `parser:"\"recall\" @Int ( \",\"? @Int )*"`
	Pick    *PickExpr `parser:"@@?"`
}

// PickExpr maps the "pick: N" block naming the recipe id.
type PickExpr struct {
	RecipeID int `parser:"\"pick\" \":\" @Int"`
}

// EndCmd ends the player turn.
type EndCmd struct {
	Keyword string `parser:"@(\"end\"|\"pass\")"`
}

// StatusCmd prints the combat state.
type StatusCmd struct {
	Keyword string `parser:"@\"status\""`
}

// RecipesCmd lists the combo table.
type RecipesCmd struct {
	Keyword string `parser:"@\"recipes\""`
}

// HelpCmd prints usage, optionally for one command.
type HelpCmd struct {
	Keyword string `parser:"@\"help\""`
	Topic   string `parser:"@(Ident|Keyword)?"`
}

// QuitCmd leaves the console.
type QuitCmd struct {
	Keyword string `parser:"@(\"quit\"|\"exit\")"`
}

package loader

import (
	"fmt"

	"github.com/marell/teolife/engine/state"
	"github.com/marell/teolife/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds one collected Lua definition before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
	order int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getIntPtr returns an optional numeric field as a pointer, nil if missing.
func getIntPtr(tbl *lua.LTable, key string) *int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		i := int(n)
		return &i
	}
	return nil
}

// tableToStringSlice converts an array-style Lua table to []string.
func tableToStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	tbl.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

// compile converts all collected Lua data into a Defs struct. Catalog order
// follows declaration order; the resolvers depend on it.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.locations {
		defs.Locations = append(defs.Locations, compileLocation(raw))
	}
	for _, raw := range coll.photos {
		defs.Photos = append(defs.Photos, compilePhoto(raw))
	}
	for i, raw := range coll.events {
		ev, err := compileEvent(raw, i)
		if err != nil {
			return nil, fmt.Errorf("compiling event %s: %w", raw.id, err)
		}
		defs.Events = append(defs.Events, ev)
	}
	for i, raw := range coll.endings {
		defs.Endings = append(defs.Endings, compileEnding(raw, i))
	}
	for _, raw := range coll.specials {
		sp, err := compileSpecial(raw, defs)
		if err != nil {
			return nil, fmt.Errorf("compiling special map %s: %w", raw.id, err)
		}
		defs.Specials = append(defs.Specials, sp)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
	}
}

func compileLocation(raw rawDef) types.LocationDef {
	tbl := raw.table
	return types.LocationDef{
		ID:         raw.id,
		Name:       getString(tbl, "name"),
		Icon:       getString(tbl, "icon"),
		UnlockAge:  getInt(tbl, "unlock_age"),
		UnlockFlag: getString(tbl, "unlock_flag"),
		X:          getInt(tbl, "x"),
		Y:          getInt(tbl, "y"),
	}
}

func compilePhoto(raw rawDef) types.PhotoDef {
	tbl := raw.table
	return types.PhotoDef{
		ID:      raw.id,
		Caption: getString(tbl, "caption"),
		AgeTag:  getInt(tbl, "age"),
	}
}

func compileEvent(raw rawDef, order int) (types.EventDef, error) {
	tbl := raw.table
	ev := types.EventDef{
		ID:            raw.id,
		Location:      getString(tbl, "location"),
		RequiredFlags: tableToStringSlice(getTable(tbl, "required_flags")),
		Title:         getString(tbl, "title"),
		Description:   getString(tbl, "description"),
		MinigameRef:   getString(tbl, "minigame"),
		PhotoUnlocks:  tableToStringSlice(getTable(tbl, "photos")),
		SuccessFlags:  tableToStringSlice(getTable(tbl, "success_flags")),
		FailureFlags:  tableToStringSlice(getTable(tbl, "failure_flags")),
		SourceOrder:   order,
	}

	rangeTbl := getTable(tbl, "age_range")
	if rangeTbl == nil {
		return ev, fmt.Errorf("age_range is required")
	}
	minV := rangeTbl.RawGetInt(1)
	maxV := rangeTbl.RawGetInt(2)
	minN, okMin := minV.(lua.LNumber)
	maxN, okMax := maxV.(lua.LNumber)
	if !okMin || !okMax {
		return ev, fmt.Errorf("age_range must be {min, max}")
	}
	ev.AgeRange = [2]int{int(minN), int(maxN)}

	if choicesTbl := getTable(tbl, "choices"); choicesTbl != nil {
		var cerr error
		choicesTbl.ForEach(func(_, v lua.LValue) {
			ct, ok := v.(*lua.LTable)
			if !ok {
				cerr = fmt.Errorf("choices must contain Choice entries")
				return
			}
			ev.Choices = append(ev.Choices, compileChoice(ct))
		})
		if cerr != nil {
			return ev, cerr
		}
	}
	return ev, nil
}

func compileChoice(tbl *lua.LTable) types.Choice {
	c := types.Choice{
		ID:          getString(tbl, "id"),
		Text:        getString(tbl, "text"),
		FlagsToSet:  tableToStringSlice(getTable(tbl, "flags")),
		PhotoUnlock: getString(tbl, "photo"),
	}
	if d := getTable(tbl, "deltas"); d != nil {
		c.Deltas = types.Deltas{
			Ambition:  getInt(d, "ambition"),
			Chaos:     getInt(d, "chaos"),
			Relations: getInt(d, "relations"),
		}
	}
	if req := getTable(tbl, "requires"); req != nil {
		c.RequiredStat = &types.StatGate{
			Stat: getString(req, "stat"),
			Min:  getInt(req, "min"),
		}
	}
	return c
}

func compileEnding(raw rawDef, order int) types.EndingDef {
	tbl := raw.table
	return types.EndingDef{
		ID:      raw.id,
		Title:   getString(tbl, "title"),
		Summary: getString(tbl, "summary"),
		Weight:  getInt(tbl, "weight"),
		Condition: types.EndingCondition{
			AmbitionMin:   getIntPtr(tbl, "ambition_min"),
			AmbitionMax:   getIntPtr(tbl, "ambition_max"),
			ChaosMin:      getIntPtr(tbl, "chaos_min"),
			ChaosMax:      getIntPtr(tbl, "chaos_max"),
			RelationsMin:  getIntPtr(tbl, "relations_min"),
			RelationsMax:  getIntPtr(tbl, "relations_max"),
			RequiredFlags: tableToStringSlice(getTable(tbl, "required_flags")),
		},
		SourceOrder: order,
	}
}

func compileSpecial(raw rawDef, defs *state.Defs) (types.SpecialMapDef, error) {
	tbl := raw.table
	sp := types.SpecialMapDef{
		ID:         raw.id,
		Name:       getString(tbl, "name"),
		TriggerAge: getInt(tbl, "trigger_age"),
		DoneFlag:   getString(tbl, "done_flag"),
	}

	nodesTbl := getTable(tbl, "nodes")
	if nodesTbl == nil {
		return sp, fmt.Errorf("nodes are required")
	}
	var nerr error
	nodesTbl.ForEach(func(_, v lua.LValue) {
		nt, ok := v.(*lua.LTable)
		if !ok {
			nerr = fmt.Errorf("nodes must contain Node entries")
			return
		}
		sp.Nodes = append(sp.Nodes, types.MapNode{
			ID:      getString(nt, "id"),
			Label:   getString(nt, "label"),
			X:       getInt(nt, "x"),
			Y:       getInt(nt, "y"),
			EventID: getString(nt, "event"),
			Icon:    getString(nt, "icon"),
		})
	})
	if nerr != nil {
		return sp, nerr
	}

	// Completion photos reference the photo catalog by id; unresolved ids
	// keep a placeholder so validation can report them.
	for _, id := range tableToStringSlice(getTable(tbl, "photos")) {
		if p := defs.PhotoByID(id); p != nil {
			sp.Photos = append(sp.Photos, *p)
		} else {
			sp.Photos = append(sp.Photos, types.PhotoDef{ID: id})
		}
	}
	return sp, nil
}

package sym

import (
	"testing"
	"unicode/utf8"
)

func TestSymbolToCommandAndCommandToSymbolAreBidirectional(t *testing.T) {
	for symbol, cmd := range SymbolToCommand {
		got, ok := CommandToSymbol[cmd]
		if !ok {
			t.Errorf("SymbolToCommand has %q → %q, but CommandToSymbol has no entry for %q", symbol, cmd, cmd)
			continue
		}
		if got != symbol {
			t.Errorf("bidirectional mismatch: SymbolToCommand[%q] = %q, but CommandToSymbol[%q] = %q", symbol, cmd, cmd, got)
		}
	}
}

func TestCommandDescriptionsCoversAllCommands(t *testing.T) {
	if len(CommandDescriptions) != len(CommandToSymbol) {
		t.Errorf("CommandDescriptions has %d entries, CommandToSymbol has %d", len(CommandDescriptions), len(CommandToSymbol))
	}
	for cmd := range CommandToSymbol {
		if _, ok := CommandDescriptions[cmd]; !ok {
			t.Errorf("CommandDescriptions missing entry for command %q", cmd)
		}
	}
}

func TestPaletteOrderContainsValidSymbols(t *testing.T) {
	for i, symbol := range PaletteOrder {
		if _, ok := SymbolToCommand[symbol]; !ok {
			t.Errorf("PaletteOrder[%d] = %q is not in SymbolToCommand", i, symbol)
		}
		if utf8.RuneCountInString(symbol) != 1 {
			t.Errorf("PaletteOrder[%d] = %q should be a single glyph", i, symbol)
		}
	}
}

func TestNodeMarker(t *testing.T) {
	if got := NodeMarker("ATTRIBUTE", true); got != Attribute {
		t.Errorf("attribute marker = %q, want %q", got, Attribute)
	}
	if got := NodeMarker("PERSON", true); got != Focal {
		t.Errorf("focal marker = %q, want %q", got, Focal)
	}
	if got := NodeMarker("PERSON", false); got != Person {
		t.Errorf("person marker = %q, want %q", got, Person)
	}
}

package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestSentences_Basic(t *testing.T) {
	text := "The chatbot understands natural language queries. it lacks a capital. Supports multiple channels for customers!"
	got := Sentences(text, 8, 15, 150)
	// "The chatbot ..." loses its filler word and then fails the uppercase
	// check, so only the last sentence survives.
	want := []string{"Supports multiple channels for customers"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sentences()=%v, want %v", got, want)
	}
}

func TestSentences_StripsSingleFillerOnly(t *testing.T) {
	// Only one leading filler word is stripped; "A This ..." keeps "This".
	got := Sentences("A This feature handles payment processing.", 8, 15, 150)
	if len(got) != 1 || got[0] != "This feature handles payment processing" {
		t.Fatalf("Sentences()=%v, want single candidate with one filler stripped", got)
	}
}

func TestSentences_NormalizesLineBreaks(t *testing.T) {
	got := Sentences("Supports offline\nmode and data sync.", 8, 15, 150)
	if len(got) != 1 || got[0] != "Supports offline mode and data sync" {
		t.Fatalf("Sentences()=%v, want line breaks folded into spaces", got)
	}
}

func TestSentences_LengthBounds(t *testing.T) {
	long := "Valid sentence " + strings.Repeat("x", 200)
	got := Sentences("Tiny. "+long+". Good candidate sentence here.", 8, 15, 150)
	if len(got) != 1 || got[0] != "Good candidate sentence here" {
		t.Fatalf("Sentences()=%v, want only the in-bounds candidate", got)
	}
}

func TestSentences_MaxItems(t *testing.T) {
	text := "First candidate sentence. Second candidate sentence. Third candidate sentence."
	got := Sentences(text, 2, 15, 150)
	if len(got) != 2 {
		t.Fatalf("Sentences() kept %d items, want 2", len(got))
	}
}

func TestSentences_EmptyInput(t *testing.T) {
	if got := Sentences("", 8, 15, 150); got != nil {
		t.Fatalf("Sentences(\"\")=%v, want nil", got)
	}
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	items := []string{
		"Implement user authentication system",
		"Implement User Authentication System with JWT",
		"Design database schema",
	}
	got := Dedupe(items, 30)
	want := []string{
		"Implement user authentication system",
		"Design database schema",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Dedupe()=%v, want %v", got, want)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	items := []string{"Alpha task one", "alpha task one extended", "Beta task two", "Beta task two"}
	once := Dedupe(items, 10)
	twice := Dedupe(once, 10)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("Dedupe not idempotent: %v vs %v", once, twice)
	}
}

func TestDedupe_OrderPreserved(t *testing.T) {
	items := []string{"Charlie", "Alpha", "Bravo", "Alpha again"}
	got := Dedupe(items, 5)
	// Surviving items must be a subsequence of the input.
	idx := 0
	for _, item := range got {
		found := false
		for ; idx < len(items); idx++ {
			if items[idx] == item {
				found = true
				idx++
				break
			}
		}
		if !found {
			t.Fatalf("Dedupe() output %v is not a subsequence of input %v", got, items)
		}
	}
}

func TestKey_TruncatesByRunes(t *testing.T) {
	if got := Key("ABCDEF", 3); got != "abc" {
		t.Fatalf("Key()=%q, want %q", got, "abc")
	}
	if got := Key("ab", 50); got != "ab" {
		t.Fatalf("Key() on short input=%q, want %q", got, "ab")
	}
}

func TestSplit_TrimsAndDropsEmpty(t *testing.T) {
	got := Split("First part. second part!  ? Third ")
	want := []string{"First part", "second part", "Third"}
	if len(got) != len(want) {
		t.Fatalf("Split()=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Split()[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplit_Empty(t *testing.T) {
	if got := Split(""); got != nil {
		t.Fatalf("Split(\"\")=%v, want nil", got)
	}
}

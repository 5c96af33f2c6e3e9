package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"github.com/wozniakpl/obfuscator/pkg/text"
)

func ExampleApply() {
	rules, err := ruleset.Load(ruleset.Map{
		{Key: "caseSensitive", Value: false},
		{Key: "rules", Value: ruleset.Map{
			{Key: "secret", Value: "***"},
			{Key: "projectName", Value: "project"},
		}},
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(text.Apply(rules, "The projectName has a SECRET"))

	// Output:
	// The project has a ***
}

func ExampleApplySelection() {
	rules := ruleset.ParseInline("alice:user1, bob:user2", true)

	buffer := "alice -> bob | alice -> bob"
	sel := text.Selection{Start: 14, End: len(buffer)}

	replaced, err := text.ApplySelection(rules, buffer, sel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(sel.Splice(buffer, replaced))

	// Output:
	// alice -> bob | user1 -> user2
}

func ExampleReplacer_ReplaceText() {
	replacer := text.NewReplacer(ruleset.ParseInline("World:Universe, Hello:Hi", true))

	result, err := replacer.ReplaceText(context.Background(), strings.NewReader("Hello World!"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: Hello World!
	// Modified: Hi Universe!
	// Changes: 2
	// Was Modified: true
}

package options_test

import (
	"fmt"

	"equals-verifier/options"
)

func ExampleWarningEnum() {
	w := options.WarningNullFields | options.WarningTransientFields
	fmt.Println(w)
	fmt.Println(w.Has(options.WarningNullFields), w.Has(options.WarningStrictHashcode))
	fmt.Println(options.WarningNone, options.WarningNone.Has(options.WarningNone))

	// Output:
	// null_fields|transient_fields
	// true false
	// none false
}

func ExampleParseWarnings() {
	w, err := options.ParseWarnings("NULL_FIELDS", "strict-inheritance")
	fmt.Println(w, err)

	w, _ = options.ParseWarnings("all")
	fmt.Println(w == options.WarningAll)

	_, err = options.ParseWarnings("nonfinal_fields")
	fmt.Println(err)

	// Output:
	// null_fields|strict_inheritance <nil>
	// true
	// unknown warning "nonfinal_fields"
}

func ExampleAllWarnings() {
	for _, w := range options.AllWarnings()[:2] {
		fmt.Printf("%s: %s\n", w, w.Description())
	}
	fmt.Println(len(options.AllWarnings()))

	// Output:
	// null_fields: fields may be nil without Equal or Hash panicking
	// transient_fields: transient fields may take part in Equal
	// 6
}

// Package formatter runs the apiformat pipeline: filter, sort, case and
// rename.
//
// Each stage is optional and works on its own copy of the document:
//
//   - filter runs when a [filter.FilterSet] is given
//   - sort runs unless NoSort is set, followed by the component-name sort
//     when collections are listed
//   - case runs when the [caser.CasingSet] configures a style
//   - rename runs when a new title is given; it replaces an existing info.title
//
// # Quick Start
//
//	result, err := formatter.FormatWithOptions(
//		formatter.WithFilePath("asyncapi.yaml"),
//		formatter.WithFilterSet(&filter.FilterSet{UnusedComponents: []string{"schemas"}}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := result.Marshal(document.SourceFormatUnknown)
//	os.Stdout.Write(out)
//
// Or use a reusable Formatter:
//
//	f := formatter.New()
//	f.Rename = "Streetlights API"
//	result, err := f.FormatFile("asyncapi.yaml")
package formatter

// Package filter removes selected parts of AsyncAPI documents.
//
// A [FilterSet] names what to remove: channel operations by verb, id or
// tag, objects carrying flags or flag values, and unreferenced components.
// Inverse rules keep only what matches. Descriptions also lose their
// "[comment]: <>" lines, and literal text replacements are applied to
// description, summary and url values.
//
// # Quick Start
//
//	fs, err := filter.ParseFilterSet(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := filter.Filter(root, fs)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.UnusedComponents)
//
// # Unused Components
//
// Each pass records which components under schemas, messages, parameters,
// messageTraits and operationTraits are defined and which are referenced.
// References are counted after the rules run, so a $ref inside a removed
// operation does not keep its target.
// Removing an unreferenced component can leave the components it
// referenced without users, so [Filter] repeats the pass until nothing more
// is removed. The loop stops after [MaxUnusedDepth] extra passes;
// [Result.Converged] is false when it stopped with work left.
//
// # Cleanup
//
// After the rules run, objects left empty are removed bottom-up. Empty
// objects inside a security list are kept.
package filter

// Package bank installs the memory bank documents into a project.
//
// The installer walks a fixed, ordered mapping from template section name to
// destination path. For each entry it applies the overwrite policy, extracts
// the section from the template and writes it:
//
//	result := bank.Install(root, doc.Content, bank.DefaultMapping(), bank.Policy{Force: force}, bank.Options{})
//	for _, o := range result.Outcomes {
//		fmt.Println(o.Status, o.Path)
//	}
//
// Entries are independent. A missing section or a failed write is recorded in
// the result and the remaining entries are still processed.
//
// The package also assembles the fill-in prompt that asks an agent to
// complete PROJECT.md and MODULES.md for the project at hand.
package bank

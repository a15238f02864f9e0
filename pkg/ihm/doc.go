// Package ihm defines the records of an integrative model as they appear in
// IHM mmCIF output.
//
// # Overview
//
// Records reference each other by pointer and are numbered when they are
// registered: every ID is a positive integer assigned once, in registration
// order within its kind, and never changed afterwards. Records that have not
// been registered have an ID of zero.
//
// # Variants
//
// Datasets, dataset locations, fragments and starting-model sources are
// closed sets of variants. [Dataset] and [Fragment] carry a kind field;
// [Location] and [Source] are sealed interfaces implemented only by the
// types in this package, so code that renders them can switch on the
// concrete type exhaustively.
//
// # Equality
//
// Two datasets describe the same data when their [Dataset.Key] values are
// equal. The key covers the dataset kind, the key attributes of its location
// and the micrograph count; display attributes such as
// [DBLocation.Details] never take part.
package ihm

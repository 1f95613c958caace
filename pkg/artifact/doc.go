// Package artifact defines Maven coordinates and their ordering.
//
// # Overview
//
// An [Artifact] is the (groupId, artifactId, version, packaging) tuple that
// names a file in a Maven repository. A [Dependency] is the coordinate a POM
// declares together with its scope and optional flag. Both are plain values:
// they are compared with ==, copied freely and never mutated after
// construction.
//
// # Coordinates
//
// Coordinates are written "groupId:artifactId:version[:packaging]":
//
//	a, err := artifact.Parse("org.apache.commons:commons-lang3:3.12.0")
//	fmt.Println(a.Packaging)       // "jar"
//	fmt.Println(a.Coordinates())   // "org.apache.commons:commons-lang3:3.12.0"
//	fmt.Println(a.RepositoryPath())
//	// org/apache/commons/commons-lang3/3.12.0/commons-lang3-3.12.0.jar
//
// # Version Ordering
//
// [CompareVersions] implements Maven-style ordering: numeric segments compare
// numerically, alphabetic segments case-insensitively with the well-known
// qualifiers ranked alpha < beta < milestone < rc < snapshot < other, and a
// qualified version sorts before its release:
//
//	1.0-alpha-1 < 1.0-RC1 < 1.0-SNAPSHOT < 1.0 = 1.0.0 < 1.0.1 < 1.10 < 2.0
package artifact

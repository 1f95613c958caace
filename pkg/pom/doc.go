// Package pom parses Maven POM documents and evaluates their declared
// dependencies.
//
// # Loading
//
// [Loader.Load] fetches a POM through any [Fetcher] (normally a
// repository.Client) and parses it. A POM that does not exist upstream is
// reported as POM_NOT_FOUND, which is distinct from access failures
// (REPOSITORY_ACCESS) and malformed documents (POM_PARSE): only the first is
// a confirmed absence.
//
// # Evaluation
//
// [Evaluate] turns the raw <dependency> entries of a [Project] into
// immutable [artifact.Dependency] values. ${name} placeholders in groupId,
// artifactId, version, scope and optional are replaced in a single pass,
// looking name up in:
//
//  1. the POM's <properties>
//  2. implicit properties describing the POM itself: project.groupId,
//     project.artifactId, project.version, project.packaging,
//     project.parent.groupId, project.parent.artifactId,
//     project.parent.version, their legacy pom.* spellings, and bare
//     groupId and version
//
// Property values are not themselves expanded, and placeholders that match
// nothing are left in place. A dependency without a version takes the one
// declared for the same groupId:artifactId in the POM's own
// <dependencyManagement>.
//
// Parent POMs are not fetched. The <parent> element only supplies the
// project's groupId and version when the POM omits them.
package pom

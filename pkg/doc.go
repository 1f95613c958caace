// Package pkg holds the jarscope libraries: identifying JVM archives by
// checksum and resolving the direct dependencies declared in their POMs.
//
// # Overview
//
// The packages form a layered stack:
//
//  1. [artifact] - Maven coordinates, scopes and version ordering
//  2. [tiered], [store], [httputil] - local/remote lookups with write-back
//  3. [finder], [repository] - checksum search and repository downloads
//  4. [pom], [resolver], [order] - POM evaluation, memoized resolution, display order
//  5. [pipeline], [render], [server] - orchestration and output
//
// # Architecture
//
//	archive bytes
//	     ↓  SHA-1
//	[finder] checksum index (local store → search service)
//	     ↓  candidate coordinates
//	[resolver] → [pom] loader → [repository] (local repo → remote repo)
//	     ↓  evaluated dependencies
//	[order] smart ordering
//	     ↓
//	text / JSON / DOT / SVG, CLI table or HTTP API
//
// # Quick Start
//
//	cfg, _ := config.Load("")
//	f, _ := finder.New(finder.Config{Mode: cfg.Finder.Mode, HTTP: cfg.HTTPClient()})
//	repo, _ := repository.New(repository.Config{Mode: tiered.RemoteOnly})
//	res := resolver.New(pom.NewLoader(repo, nil), resolver.Options{})
//
//	runner := pipeline.NewRunner(f, res, nil)
//	id, _ := runner.Identify(ctx, "lib/guava.jar")
//	deps, _ := runner.Dependencies(ctx, id.Candidates[0])
//
// [artifact]: github.com/matzehuels/jarscope/pkg/artifact
// [tiered]: github.com/matzehuels/jarscope/pkg/tiered
// [store]: github.com/matzehuels/jarscope/pkg/store
// [httputil]: github.com/matzehuels/jarscope/pkg/httputil
// [finder]: github.com/matzehuels/jarscope/pkg/finder
// [repository]: github.com/matzehuels/jarscope/pkg/repository
// [pom]: github.com/matzehuels/jarscope/pkg/pom
// [resolver]: github.com/matzehuels/jarscope/pkg/resolver
// [order]: github.com/matzehuels/jarscope/pkg/order
// [pipeline]: github.com/matzehuels/jarscope/pkg/pipeline
// [render]: github.com/matzehuels/jarscope/pkg/render
// [server]: github.com/matzehuels/jarscope/pkg/server
package pkg

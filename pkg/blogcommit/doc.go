// Package blogcommit turns pending blog post changes into a bounded series of commits.
//
// A run is a single pass over the repository:
//
//  1. resolve the repository root,
//  2. refuse to continue when files outside the content root are staged,
//  3. scan `git status` below the content root,
//  4. keep the qualifying posts, sorted by path,
//  5. read each post's slug,
//  6. split the posts into batches and commit them one by one.
//
// Usage:
//
//	cfg := blogcommit.NewConfig(
//		blogcommit.WithBatchSize(40),
//		blogcommit.WithDryRun(true),
//	)
//	runner := blogcommit.NewRunner(git.NewClient(".", logger, nil), cfg, os.Stdout, logger)
//	plan, err := runner.Run(ctx)
package blogcommit

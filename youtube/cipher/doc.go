/*
Package cipher rebuilds the signature decipher routine of a player script and
evaluates it for a batch of encrypted signatures.

# Synthesis

The watch page references a versioned player script. Synthesize locates the
entry routine in that script (a single-parameter function that starts by
splitting its argument into characters), cuts its body out by brace depth and
then pulls in every helper object or function the body calls, transitively,
until the result runs on its own.

# Profiles

A Profile is the triple (asset name, function name, script). Profiles are
immutable; a Cell holds the current one and replaces it with a single atomic
pointer swap so readers never see a name paired with another asset's body.
Provider keeps the cell warm from the FileCache and shares concurrent
syntheses for the same asset.

# Cache

FileCache persists the current profile as three lines. Entries older than the
TTL (14 days by default) are ignored. Cache failures are logged at debug level
and otherwise treated as misses.

# Evaluation

Bridge builds one invocation calling the entry routine once per signature and
joining the results with newlines, submits it to an Evaluator and waits for
the first of result, error or timeout. The package never executes script
itself.
*/
package cipher

package main

const descriptionSpawnMocha = `spawn-mocha runs mocha test files in a single child process.

The test runner is configured through a YAML file (".spawn-mocha.yaml" in the current directory or any of its
parents). Reserved keys configure the process itself:

    bin        the test runner script, defaults to mocha from the nearest node_modules
    env        environment variables added to the inherited environment
    cwd        the working directory of the test runner
    execPath   the interpreter, defaults to "node"
    output     a file receiving the combined stdout & stderr of the test runner
    nyc        run the tests under nyc. Either true or a mapping of nyc options
    istanbul   run the tests under the legacy istanbul "cover" command

Every other key is passed on to mocha as a command line flag, in the order it appears in the file.`

const descriptionRun = `Execute mocha for the given test files.

Arguments are file paths or glob patterns, "**" matches any number of directories. All files are handed to a single
mocha process, in the order they were given. Paths matched more than once, by overlapping globs, repeated
arguments or stdin, are only passed on once. The exit code of spawn-mocha mirrors the exit code of mocha.

Examples:

    spawn-mocha run "test/**/*.spec.js"
    find test -name '*.spec.js' | spawn-mocha run --stdin
    spawn-mocha run --nyc --output mocha.log test/unit.js`

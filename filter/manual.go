package filter

const manual = `Syntax:

  [!](<path>|*)[@(<level>[+|-]|*)][,<...>]

  <path>    = <segment>[:<segment>...][:*|::*] | .
  <segment> = ` + segmentRule + `
  <level>   = trace | debug | info | warn | error | fatal
            | 1     | 2     | 3    | 4    | 5     | 6

Examples:

  *              all paths at the default level
  *@*            all paths at all levels
  *@info         all paths at info level
  *@3            all paths at info level
  *@3+           all paths at info level or higher
  *@3-           all paths at info level or lower
  .              the root logger only
  app@*          app at all levels
  app:db         app:db at the default level
  app,nexus      app and nexus at the default level
  app:*          app and its descendants at the default level
  app::*         descendants of app, not app itself
  app:*@debug+   app and its descendants at debug level or higher
  *,!app         everything except app
`

// Manual returns the reference text for the filter language.
func Manual() string {
	return manual
}

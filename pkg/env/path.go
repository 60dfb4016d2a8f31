package env

// PathVar is the variable holding the executable search path.
const PathVar = "PATH"

// AppendPath appends dir to PathVar, separated by PathDelimiter. If PathVar is not
// set, dir becomes its whole value.
func AppendPath(e Env, dir string) error {
	path, ok := e.LookupEnv(PathVar)
	if ok {
		path = path + PathDelimiter + dir
	} else {
		path = dir
	}
	return e.Setenv(PathVar, path)
}

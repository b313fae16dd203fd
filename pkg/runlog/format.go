package runlog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// moduleField carries the session's module name on every event so both
// sinks can render it as the third line segment.
const moduleField = "module"

// lineTimeFormat mirrors the classic "YYYY-MM-DD HH:MM:SS" log line prefix.
const lineTimeFormat = "2006-01-02 15:04:05"

// lineWriter renders events as
//
//	<timestamp> - <LEVEL> - <module> - <message>
//
// followed by any extra fields as key=value pairs. Both the console and the
// file sink share this format.
func lineWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:     out,
		NoColor: true,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			moduleField,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{moduleField},
		FormatTimestamp: func(i interface{}) string {
			raw, ok := i.(string)
			if !ok {
				return fmt.Sprintf("%v -", i)
			}
			t, err := time.ParseInLocation(zerolog.TimeFieldFormat, raw, time.Local)
			if err != nil {
				return raw + " -"
			}
			return t.Local().Format(lineTimeFormat) + " -"
		},
		FormatLevel: func(i interface{}) string {
			level := strings.ToUpper(fmt.Sprintf("%s", i))
			if level == "WARN" {
				level = "WARNING"
			}
			return level + " -"
		},
		FormatPartValueByName: func(i interface{}, name string) string {
			if name == moduleField {
				return fmt.Sprintf("%s -", i)
			}
			return fmt.Sprintf("%s", i)
		},
		FormatMessage: func(i interface{}) string {
			if i == nil {
				return ""
			}
			return fmt.Sprintf("%s", i)
		},
	}
}

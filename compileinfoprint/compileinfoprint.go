// compileinfoprint is imported by the submorph tools for the side effect of
// printing build provenance to os.Stderr before any output is written.
package compileinfoprint

import "github.com/carbocation/submorph/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}

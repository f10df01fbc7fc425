// main.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
)

var (
	WarningLogger *log.Logger
	InfoLogger    *log.Logger
	ErrorLogger   *log.Logger
	OutputLogger  *log.Logger
)

func init() {
	setLoggers(io.Discard)
}

func setLoggers(w io.Writer) {
	InfoLogger = log.New(w, "INFO: ", log.Ldate|log.Ltime)
	WarningLogger = log.New(w, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	OutputLogger = log.New(w, "", 0)
}

// initLog points the loggers at fname, appending. The caller closes the
// returned file.
func initLog(fname string) (*os.File, error) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	setLoggers(file)
	return file, nil
}

func appInfo() {
	OutputLogger.Print("\n              __  __  ____      |\n             /\\ \\/\\ \\/\\  __\\    |" +
		" Author: Mirzaeva Irina Valerievna\n   __     ___\\ \\ \\_\\ \\ \\ \\_/    | email: dairdre@gmail.com\n" +
		" /'_ `\\  / __`\\ \\  _  \\ \\  _\\   | Nikolaev Institute of Inorganic Chemistry SB RAS" +
		" (http://niic.nsc.ru/)\n/\\ \\L\\ \\/\\ \\L\\ \\ \\ \\ \\ \\ \\ \\/   | Novosibirsk, Russia" +
		"\n\\ \\____ \\ \\____/\\ \\_\\ \\_\\ \\_\\   | HF stands for Himicheskaya Fizika\n \\/___L\\" +
		" \\/___/  \\/_/\\/_/\\/_/   | Have Fun!!!\n   /\\____/                      |\n   \\_/__/                       |\n\n\n")
}

func printOutputDelimiter() {
	OutputLogger.Println(strings.Repeat("-", 70))
}

// outputName replaces the extension of an input file name with "out".
func outputName(inpFname string) string {
	return strings.TrimSuffix(inpFname, filepath.Ext(inpFname)) + ".out"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatalf("%+v", err)
	}
}

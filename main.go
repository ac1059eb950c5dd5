// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/invowk/npx/cmd/npx"

func main() {
	cmd.Execute()
}

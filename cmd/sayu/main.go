// Command sayu 从作品来源构建作品池，按人格代码打印推荐结果（JSON）。
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package cpu

func uninstall() {
	installed.Store(nil)
}

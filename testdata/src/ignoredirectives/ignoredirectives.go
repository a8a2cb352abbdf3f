package ignoredirectives

import "golang.org/x/sys/unix"

func suppressedByRule(t *int64) {
	unix.Localtime(t) //ffiguard:ignore nonreentrant
}

func suppressedByLineAbove(t *int64) {
	//ffiguard:ignore
	unix.Localtime(t)
}

func wrongRuleStillReports(t *int64) {
	unix.Localtime(t) //ffiguard:ignore memunsafe // want `use of non-reentrant function \(consider using its reentrant counterpart\)` `unused ffiguard:ignore directive for rule\(s\): memunsafe`
}

//ffiguard:ignore nonreentrant // want `unused ffiguard:ignore directive for rule\(s\): nonreentrant`
func nothingToIgnore() {}

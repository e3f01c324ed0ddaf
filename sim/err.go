package sim

import (
	"github.com/ezrec/enginetb/translate"
)

var f = translate.From

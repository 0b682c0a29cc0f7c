package component

type GeneratorTag struct{}

var GeneratorTagComponent = NewComponent[GeneratorTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

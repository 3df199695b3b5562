/*
Package targetref provides the composite identity of a target: the path of
the project that contains it plus the target name.

The canonical string form is `path:Name`, e.g. `/work/App:AppTests`. The path
may be omitted (`Name`), in which case the reference is local to whichever
project it is resolved against.

Target names are not unique across projects, so every lookup in the graph
goes through a Reference rather than a bare name.
*/
package targetref
